package scoreboard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrCorruptedFile = errors.New("corrupted scoreboard file")

// Read parses entries written by Write. Every entry takes three lines:
// the score, the player name and the lines cleared.
func Read(r io.Reader) ([]Entry, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read scoreboard: %w", err)
	}
	if len(lines)%3 != 0 {
		return nil, fmt.Errorf("%w: %d lines, at least one part of an entry is missing", ErrCorruptedFile, len(lines))
	}

	entries := make([]Entry, 0, len(lines)/3)
	for i := 0; i < len(lines); i += 3 {
		score, err := strconv.Atoi(lines[i])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrCorruptedFile, i+1, err)
		}
		cleared, err := strconv.Atoi(lines[i+2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrCorruptedFile, i+3, err)
		}
		entries = append(entries, Entry{Score: score, Name: lines[i+1], LinesCleared: cleared})
	}
	return entries, nil
}

// Write writes entries in the format understood by Read.
// Line breaks in names are replaced by spaces.
func Write(w io.Writer, entries ...Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		name := strings.NewReplacer("\r", " ", "\n", " ").Replace(e.Name)
		if _, err := fmt.Fprintf(bw, "%d\n%s\n%d\n", e.Score, name, e.LinesCleared); err != nil {
			return fmt.Errorf("unable to write scoreboard entry: %w", err)
		}
	}
	return bw.Flush()
}

// FileStore keeps entries in a text file.
type FileStore struct {
	Path string
}

// Load reads every entry in the file. A missing file is an empty scoreboard.
func (f FileStore) Load() ([]Entry, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open scoreboard file: %w", err)
	}
	defer file.Close()

	entries, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return entries, nil
}

// Append adds entries at the end of the file, creating it if needed.
func (f FileStore) Append(entries ...Entry) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create scoreboard directory: %w", err)
		}
	}
	file, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open scoreboard file: %w", err)
	}
	if err := Write(file, entries...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
