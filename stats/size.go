package stats

import (
	"fmt"
	"os"
)

var sizeUnits = []string{"bytes", "KB", "MB", "GB", "TB"}

// FormatBytes returns a human readable size with one decimal.
func FormatBytes(n int64) string {
	size := float64(n)
	for _, unit := range sizeUnits[:len(sizeUnits)-1] {
		if size < 1024.0 {
			return fmt.Sprintf("%3.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%3.1f %s", size, sizeUnits[len(sizeUnits)-1])
}

// FileSize returns the formatted size of filename.
func FileSize(filename string) (string, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return "", err
	}
	return FormatBytes(fi.Size()), nil
}
