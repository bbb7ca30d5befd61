package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Tail returns at most n trailing lines of the log file at path, oldest first.
// A missing file yields no lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 || path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		if count < n {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < n {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, n)
	lines = append(lines, ring[next:]...)
	return append(lines, ring[:next]...), nil
}
