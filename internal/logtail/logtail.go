package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnknownLevel reports a Level filter that names no slog level.
var ErrUnknownLevel = errors.New("unknown log level")

// Options select which lines Read returns.
type Options struct {
	// Lines caps the result to the last N matching lines; zero or negative
	// returns every matching line.
	Lines int
	// Level drops lines below this slog level (debug, info, warn, error).
	Level string
	// Match keeps only lines containing this substring, e.g. a ticket ID.
	Match string
}

// Read returns the tail of the desk log at path. A missing file reads as empty.
func Read(path string, opts Options) ([]string, error) {
	minRank := levelRank(opts.Level)
	if minRank == 0 && strings.TrimSpace(opts.Level) != "" {
		return nil, fmt.Errorf("%w %q (want debug, info, warn or error)", ErrUnknownLevel, opts.Level)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	keep := func(line string) bool {
		if opts.Match != "" && !strings.Contains(line, opts.Match) {
			return false
		}
		return minRank == 0 || levelRank(LineLevel(line)) >= minRank
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if opts.Lines <= 0 {
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

	limit := opts.Lines
	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LineLevel extracts the level from a text or JSON slog line, upper-cased.
// It returns "" when the line carries no level.
func LineLevel(line string) string {
	for _, marker := range []string{"level=", `"level":"`} {
		i := strings.Index(line, marker)
		if i < 0 {
			continue
		}
		rest := line[i+len(marker):]
		end := strings.IndexAny(rest, " \"")
		if end >= 0 {
			rest = rest[:end]
		}
		return strings.ToUpper(rest)
	}
	return ""
}

func levelRank(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return 1
	case "INFO":
		return 2
	case "WARN", "WARNING":
		return 3
	case "ERROR":
		return 4
	default:
		return 0
	}
}
