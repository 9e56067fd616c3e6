package util

import (
	"errors"
	"strings"
)

var errBadFileName = errors.New("invalid file name")

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName strips path separators from a client-supplied file name
// and rejects traversal sequences outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errBadFileName
	}
	s := fileNameReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errBadFileName
	}
	return s, nil
}
