package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "couch.png", expected: "couch.png"},
		{name: "single space", input: "blue couch.png", expected: "blue-couch.png"},
		{name: "multiple spaces collapse", input: "old  desk   lamp.jpg", expected: "old-desk-lamp.jpg"},
		{name: "tabs and newlines", input: "desk\tlamp\n.png", expected: "desk-lamp-.png"},
		{name: "leading and trailing whitespace", input: "  photo.webp  ", expected: "photo.webp"},
		{name: "directory components stripped", input: "../secret/photo.png", expected: "photo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestContentTypeForFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "photo.PNG", expected: "image/png"},
		{name: "jpeg", input: "photo.jpeg", expected: "image/jpeg"},
		{name: "jpg", input: "photo.jpg", expected: "image/jpeg"},
		{name: "webp", input: "photo.webp", expected: "image/webp"},
		{name: "unknown extension", input: "photo.bin", expected: "application/octet-stream"},
		{name: "no extension", input: "photo", expected: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ContentTypeForFilename(tt.input); got != tt.expected {
				t.Fatalf("ContentTypeForFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}
