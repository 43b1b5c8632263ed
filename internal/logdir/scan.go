package logdir

import (
	"os"
	"sort"
	"strings"

	"logscribe/internal/services"
)

// AudioExt is the extension of audio log files picked up by ScanWAV.
const AudioExt = ".wav"

// ScanWAV lists the audio log files directly inside dir. Only regular entries
// whose name ends with AudioExt are returned, as base names sorted ascending.
func ScanWAV(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "logdir", "scan", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "logdir", "scan", dir+" is not a directory", nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "logdir", "scan", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, AudioExt) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
