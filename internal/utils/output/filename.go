package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// FileTimestampLayout is the timestamp embedded in export file names
const FileTimestampLayout = "20060102_150405"

// SanitizeKeyword makes keyword safe for a file name: letters, digits and
// underscores survive, every other character becomes '_'.
func SanitizeKeyword(keyword string) string {
	var b strings.Builder
	for _, r := range keyword {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Filename builds "<keyword>_<source>_<YYYYMMDD_HHMMSS>.<ext>"
func Filename(keyword, source string, format Format, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", SanitizeKeyword(keyword), source, at.Format(FileTimestampLayout), format.Extension())
}

// EnsureDir makes sure dir exists, creating it and its parents when create is set
func EnsureDir(dir string, create bool) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return abs, nil
	case err == nil:
		return "", fmt.Errorf("%s is not a directory", abs)
	case !os.IsNotExist(err):
		return "", err
	case !create:
		return "", fmt.Errorf("directory does not exist: %s", abs)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return abs, nil
}
