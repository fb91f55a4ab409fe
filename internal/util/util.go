package util

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
)

// HashingReader wraps an io.Reader and computes the SHA256 checksum of
// everything read through it. It lets uploads hash file contents while
// streaming them to storage in a single pass.
type HashingReader struct {
	reader io.Reader
	hasher hash.Hash
}

// NewHashingReader creates a HashingReader over r.
func NewHashingReader(r io.Reader) *HashingReader {
	return &HashingReader{
		reader: r,
		hasher: sha256.New(),
	}
}

// Read reads from the underlying reader and feeds the hash.
func (hr *HashingReader) Read(p []byte) (int, error) {
	n, err := hr.reader.Read(p)
	if n > 0 {
		hr.hasher.Write(p[:n])
	}

	return n, err
}

// Checksum returns the hex-encoded SHA256 of all bytes read so far.
func (hr *HashingReader) Checksum() string {
	return fmt.Sprintf("%x", hr.hasher.Sum(nil))
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
