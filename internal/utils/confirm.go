// Package utils provides small helpers shared by CLI commands.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes msg to out and reads a y/n answer from in. Anything other
// than y or yes, including EOF, counts as no.
func Confirm(in io.Reader, out io.Writer, msg string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", msg)
	r := bufio.NewReader(in)
	line, _ := r.ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}
