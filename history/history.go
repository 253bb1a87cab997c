// Package history logs parsed commands to an append-only JSON-lines file,
// mirroring the teacher's own command-history helper (spec.md §6 "History").
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Entry is one recorded parse, keyed by the command that produced it so a
// multi-command Registry can share a single history file.
type Entry struct {
	CommandID string `json:"command_id"`
	Raw       string `json:"raw"`
	Matched   bool   `json:"matched"`
	Ts        int64  `json:"ts"`
}

// Log is an in-memory mirror of an append-only history file.
type Log struct {
	mu      sync.Mutex
	file    *os.File
	entries []Entry
}

const fileName = ".alconna_history"

// Open loads dir/.alconna_history into memory (skipping any line that
// fails to unmarshal, same tolerance as the teacher's loader) and keeps
// the file open for append. A missing file is not an error — Log starts
// empty and Open creates the file.
func Open(dir string) (*Log, error) {
	path := filepath.Join(dir, fileName)

	var entries []Entry
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var e Entry
			if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
				entries = append(entries, e)
			}
		}
		f.Close()
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Log{file: file, entries: entries}, nil
}

// Record appends one parse outcome, skipping blank raw input.
func (l *Log) Record(commandID, raw string, matched bool) {
	if len(strings.TrimSpace(raw)) == 0 {
		return
	}
	e := Entry{CommandID: commandID, Raw: raw, Matched: matched, Ts: time.Now().Unix()}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)
	if l.file == nil {
		return
	}
	bs, err := json.Marshal(e)
	if err != nil {
		return
	}
	l.file.Write(bs)
	l.file.WriteString("\n")
}

// List returns every recorded entry for commandID whose raw input starts
// with prefix, in recording order — the source for a "history" shortcut or
// an up-arrow recall in an interactive shell.
func (l *Log) List(commandID, prefix string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo.Filter(l.entries, func(e Entry, _ int) bool {
		return e.CommandID == commandID && strings.HasPrefix(e.Raw, prefix)
	})
}

// Close releases the underlying file handle.
func (l *Log) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
}
