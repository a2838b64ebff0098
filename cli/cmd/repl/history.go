package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// History is the list of lines entered in previous sessions, oldest first,
// persisted one line per entry.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory returns an empty History persisted at path.
// An empty path keeps the history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries of h with those in its file.
// A missing file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return ErrLoadHistory.Wrap(err)
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	if err := scanner.Err(); err != nil {
		return ErrLoadHistory.Wrap(err)
	}

	return nil
}

// Write appends entry to the history. An earlier copy of the same entry is
// moved to the end instead of being repeated.
func (h *History) Write(entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	rewrite := false

	for i, e := range h.entries {
		if e == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			rewrite = true

			break
		}
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return ErrSaveHistory.Wrap(err)
	}
	defer file.Close()

	if _, err := file.WriteString(entry + "\n"); err != nil {
		return ErrSaveHistory.Wrap(err)
	}

	return nil
}

// GetLine returns the entry at index i. Index 0 is the oldest entry.
func (h *History) GetLine(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]string(nil), h.entries...)
}

// rewriteFile replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return ErrSaveHistory.Wrap(err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		_, _ = w.WriteString(entry + "\n")
	}

	if err := w.Flush(); err != nil {
		return ErrSaveHistory.Wrap(err)
	}

	return nil
}
