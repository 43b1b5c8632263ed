package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"logscribe/internal/services"
)

// FileColumn names the first CSV column.
const FileColumn = "wav_file"

// Record is one transcribed audio file.
type Record struct {
	File string
	Text string
}

// Header returns the header row for output produced by model.
func Header(model string) []string {
	return []string{FileColumn, fmt.Sprintf("transcription %s", model)}
}

// Append adds rec to the CSV file at path, writing the header first when the
// file does not exist yet or is empty. An advisory lock is held for the whole
// cycle so concurrent writers sharing one output file never split a row.
func Append(path string, rec Record, model string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "csvout", "append", "create output directory", err)
		}
	}

	lock := flock.New(path, flock.SetPermissions(0o644))
	if err := lock.Lock(); err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "lock "+path, err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = services.Wrap(services.ErrIO, "csvout", "append", "unlock "+path, unlockErr)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "stat "+path, err)
	}
	needHeader := info.Size() == 0

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "open "+path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if needHeader {
		if err := w.Write(Header(model)); err != nil {
			return services.Wrap(services.ErrIO, "csvout", "append", "write header", err)
		}
	}
	if err := w.Write([]string{rec.File, rec.Text}); err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "write row", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "flush "+path, err)
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrIO, "csvout", "append", "close "+path, err)
	}
	return nil
}
