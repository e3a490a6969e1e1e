package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options control Read.
type Options struct {
	// MaxLines caps the number of lines returned, counted from the end of the
	// file after filtering. Zero or negative reads everything.
	MaxLines int
	// ProblemsOnly keeps only warning and more severe lines.
	ProblemsOnly bool
}

// Read returns the tail of the log file at path. A missing file yields no
// lines and no error.
func Read(path string, opts Options) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	keep := func(line string) bool {
		if !opts.ProblemsOnly {
			return true
		}
		lvl, ok := LineLevel(line)
		return ok && lvl <= logrus.WarnLevel
	}

	if opts.MaxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			if line := scanner.Text(); keep(line) {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	maxLines := opts.MaxLines
	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LineLevel extracts the level=... field from a logrus text line.
func LineLevel(line string) (logrus.Level, bool) {
	_, rest, found := strings.Cut(line, "level=")
	if !found {
		return 0, false
	}
	token, _, _ := strings.Cut(rest, " ")
	lvl, err := logrus.ParseLevel(strings.Trim(token, `"`))
	if err != nil {
		return 0, false
	}
	return lvl, true
}
