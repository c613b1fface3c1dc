// Package report appends one NDJSON line per tool run: when it ran, what it
// ran on, and what the counts were. Intended for audit trails over repeated
// redaction passes; a nil Recorder disables reporting entirely.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"
	"time"
)

type Entry struct {
	Time   string `json:"time"`
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Digest string `json:"digest"`
	Counts any    `json:"counts,omitempty"`
}

type Recorder struct {
	path string
	mu   sync.Mutex
}

func NewRecorder(path string) *Recorder {
	if path == "" {
		return nil
	}
	return &Recorder{path: path}
}

// Digest fingerprints the raw input so report lines can be tied to an exact
// file revision.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Append writes one report line. Safe on a nil receiver.
func (r *Recorder) Append(tool, input string, raw []byte, counts any) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	entry := Entry{
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
		Tool:   tool,
		Input:  input,
		Digest: Digest(raw),
		Counts: counts,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}
