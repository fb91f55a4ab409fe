package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestHashingReader(t *testing.T) {
	t.Parallel()

	content := "lecture notes for week three"
	hr := NewHashingReader(strings.NewReader(content))

	read, err := io.ReadAll(hr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(read) != content {
		t.Fatalf("read %q, want %q", read, content)
	}

	expected := fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
	if got := hr.Checksum(); got != expected {
		t.Fatalf("Checksum() = %s, want %s", got, expected)
	}
}

func TestHashingReaderEmpty(t *testing.T) {
	t.Parallel()

	hr := NewHashingReader(strings.NewReader(""))
	if _, err := io.ReadAll(hr); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	expected := fmt.Sprintf("%x", sha256.Sum256(nil))
	if got := hr.Checksum(); got != expected {
		t.Fatalf("Checksum() = %s, want %s", got, expected)
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
		{name: "gigabyte", bytes: 5 * 1024 * 1024 * 1024, expected: "5.0 GB"},
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
