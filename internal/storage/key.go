package storage

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// NewKey returns a fresh storage key for an uploaded file. Only a sanitized
// extension of the client name survives, so client input never reaches a path.
func NewKey(fileName string) string {
	return uuid.NewString() + safeExt(fileName)
}

func safeExt(fileName string) string {
	// handle both separators, browsers on windows may send a full path
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

// ValidKey reports whether key has the shape produced by NewKey.
func ValidKey(key string) bool {
	if len(key) < 36 {
		return false
	}
	if _, err := uuid.Parse(key[:36]); err != nil {
		return false
	}
	rest := key[36:]
	return rest == "" || extPattern.MatchString(rest)
}
