package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// confirmPrompt writes message to out and reads one answer from in. Only y
// or yes confirms.
func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprint(out, message)

	sc := bufio.NewScanner(in)
	sc.Split(scanAnswer)
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// scanAnswer splits on LF or CR, so Enter works in raw terminals too. A
// final answer without a line ending still counts.
func scanAnswer(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
