package handler

import (
	"strings"
	"time"
	"unicode"

	"github.com/sh3r4rd/upload_url/internal/model"
)

// DeriveKey builds the storage key for fileName: the UTC time at second
// precision, a dash, then fileName unchanged.
//
// Two requests for the same name within one second get the same key.
func DeriveKey(now time.Time, fileName string) string {
	return now.UTC().Format(model.KeyTimeLayout) + "-" + fileName
}

// unsafeFileName reports why name cannot be used as the last segment of a
// flat key, or "" if it can.
func unsafeFileName(name string) string {
	if name == "." || name == ".." {
		return "must not be a relative path segment"
	}
	if strings.ContainsAny(name, `/\`) {
		return "must not contain path separators"
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return "must not contain control characters"
	}
	return ""
}
