package util

import (
	"errors"
	"strings"
)

// SanitizeFileName cleans an uploaded resume file name so it is safe to use
// as an object-store key. Path separators are flattened and traversal
// patterns rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if s == "" || s == "." {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
