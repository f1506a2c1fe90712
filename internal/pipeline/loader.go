package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxRecordBytes bounds the size of a record document
const DefaultMaxRecordBytes int64 = 16 << 20

// ErrRecordTooLarge is returned when a record file exceeds the size limit
var ErrRecordTooLarge = errors.New("record exceeds size limit")

// ReadRecordFile reads a record document, refusing files over maxBytes
func ReadRecordFile(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer func() { _ = f.Close() }()

	if maxBytes <= 0 {
		maxBytes = DefaultMaxRecordBytes
	}

	// Read one byte past the limit to detect oversize input
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrRecordTooLarge, path, maxBytes)
	}

	return data, nil
}
