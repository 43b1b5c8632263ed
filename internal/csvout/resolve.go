package csvout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"logscribe/internal/services"
)

// DefaultFileName is the output file created inside each input directory when
// no explicit path is given.
const DefaultFileName = "automatic_transcriptions.csv"

const maxSuffixAttempts = 10000

// ResolvePath returns the output path for dir using DefaultFileName.
func ResolvePath(dir, explicit string) (string, error) {
	return Resolver{}.Resolve(dir, explicit)
}

// Resolver derives output paths for input directories.
type Resolver struct {
	// FileName overrides DefaultFileName for directories without an explicit path.
	FileName string
}

// Resolve returns explicit when set, otherwise FileName inside dir, moved to
// the first free "_N" variant when the candidate already exists. The file is
// not created.
func (r Resolver) Resolve(dir, explicit string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		name := strings.TrimSpace(r.FileName)
		if name == "" {
			name = DefaultFileName
		}
		candidate = filepath.Join(dir, name)
	}
	return NextAvailable(candidate)
}

// NextAvailable returns path when nothing exists there, otherwise the first of
// <stem>_1<ext>, <stem>_2<ext>, ... that does not exist. Only the filename
// component changes, so directory names containing the stem are left alone.
func NextAvailable(path string) (string, error) {
	free, err := available(path)
	if err != nil {
		return "", err
	}
	if free {
		return path, nil
	}

	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; n <= maxSuffixAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		free, err := available(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrIO, "csvout", "resolve", fmt.Sprintf("no free output name for %s after %d attempts", path, maxSuffixAttempts), nil)
}

func available(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, services.Wrap(services.ErrIO, "csvout", "resolve", "stat "+path, err)
}
