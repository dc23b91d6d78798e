package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Delimiter separates cells within a row.
const Delimiter = ";"

// Grid is a table of text cells, one slice per row.
type Grid [][]string

// Read parses semicolon-delimited rows. Cells are trimmed and blank lines are
// skipped.
func Read(r io.Reader) (Grid, error) {
	var g Grid
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, Delimiter)
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		g = append(g, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadFile reads the grid stored at path.
func ReadFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// Bytes renders the grid, one line per row.
func (g Grid) Bytes() []byte {
	var b bytes.Buffer
	for _, row := range g {
		b.WriteString(strings.Join(row, Delimiter))
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Write renders the whole grid in memory and writes it with a single call.
func Write(w io.Writer, g Grid) error {
	_, err := w.Write(g.Bytes())
	return err
}

// WriteFile stores the grid at path. The data goes to a temporary file in the
// same directory which is renamed over path once complete, so a failed write
// never leaves a truncated table behind.
func WriteFile(path string, g Grid) error {
	return CommitFile(path, g.Bytes())
}

// CommitFile writes data to path through a temporary file and a rename.
func CommitFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
