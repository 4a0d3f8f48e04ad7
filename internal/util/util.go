package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename collapses every run of whitespace in the name into a
// single hyphen and strips any directory components, so uploaded names are
// safe to use as blob keys and URL path segments.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))

	return strings.Join(strings.Fields(name), "-")
}

// ContentTypeForFilename guesses the MIME type of an uploaded image from its
// extension. Unknown extensions fall back to a generic byte stream.
func ContentTypeForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
