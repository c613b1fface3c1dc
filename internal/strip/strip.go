// Package strip is the raw pre-filter: drop any line longer than a byte
// cutoff. HAR files embed response bodies on single enormous lines; cutting
// those makes a capture skimmable before any JSON-aware processing. The
// output of this tool is usually not valid JSON anymore, by design.
package strip

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultMaxLineLength is the cutoff used when none is configured.
const DefaultMaxLineLength = 1000

// Stats reports line counts for a strip run.
type Stats struct {
	Original int `json:"original"`
	Kept     int `json:"kept"`
	Removed  int `json:"removed"`
}

// Lines copies r to w, keeping only lines whose length (excluding the
// trailing newline) is at most maxLen bytes.
func Lines(r io.Reader, w io.Writer, maxLen int) (Stats, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	var stats Stats
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			stats.Original++
			body := line
			if body[len(body)-1] == '\n' {
				body = body[:len(body)-1]
			}
			if len(body) <= maxLen {
				stats.Kept++
				if _, werr := writer.WriteString(line); werr != nil {
					return stats, fmt.Errorf("write stripped output: %w", werr)
				}
			} else {
				stats.Removed++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("write stripped output: %w", err)
	}
	return stats, nil
}
