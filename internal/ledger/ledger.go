// Append-only log of fully processed canonical URLs.
// Makes successive runs resumable: ledgered links are skipped, and a link is
// pruned again when its downstream artifacts later turn out corrupt so the
// next run retries it from scratch.

package ledger

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type Ledger struct {
	mu       sync.Mutex
	filePath string
	done     map[string]struct{}
}

// Open creates the ledger file if needed and loads every recorded URL.
func Open(path string) (*Ledger, error) {
	l := &Ledger{
		filePath: path,
		done:     make(map[string]struct{}),
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer file.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			l.done[line] = struct{}{}
		}
	}
	return l, nil
}

// Contains reports whether url was already fully processed.
func (l *Ledger) Contains(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.done[url]
	return ok
}

// Append records url as fully processed. Appending an already-ledgered URL
// is a no-op so the file stays one line per link.
func (l *Ledger) Append(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.done[url]; ok {
		return nil
	}

	file, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%s\n", url); err != nil {
		return err
	}
	l.done[url] = struct{}{}
	return nil
}

// Remove prunes url from the ledger so the next run retries it.
func (l *Ledger) Remove(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.done[url]; !ok {
		return nil
	}
	delete(l.done, url)

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return err
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" && trimmed != url {
			kept = append(kept, trimmed)
		}
	}

	out := strings.Join(kept, "\n")
	if out != "" {
		out += "\n"
	}
	return os.WriteFile(l.filePath, []byte(out), 0644)
}

// Len returns the number of ledgered URLs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.done)
}
