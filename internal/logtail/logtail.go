package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const blockSize = 8 * 1024

// Tail returns at most n lines from the end of the file at path, oldest
// first. A trailing newline does not count as an empty last line.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	return tail(f, info.Size(), n)
}

// tail scans r backwards from size until it has seen n line breaks beyond
// the final one, or reaches the start.
func tail(r io.ReaderAt, size int64, n int) ([]string, error) {
	var buf []byte
	offset := size
	for offset > 0 && bytes.Count(bytes.TrimSuffix(buf, []byte("\n")), []byte("\n")) < n {
		step := int64(blockSize)
		if offset < step {
			step = offset
		}
		offset -= step
		block := make([]byte, step)
		if _, err := r.ReadAt(block, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(block, buf...)
	}

	text := string(bytes.TrimSuffix(buf, []byte("\n")))
	if text == "" {
		return nil, nil
	}
	lines := bytes.Split([]byte(text), []byte("\n"))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(bytes.TrimSuffix(l, []byte("\r")))
	}
	return out, nil
}
