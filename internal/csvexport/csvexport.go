// Package csvexport projects rows onto an ordered column list and writes
// them as CSV with every field quoted.
package csvexport

import (
	"bufio"
	"io"
	"strings"
)

// Column is one output column: a header label and its value for a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Write writes a header row followed by one record per row. Records end in
// "\n", every field is wrapped in double quotes and embedded quotes are doubled.
func Write[T any](w io.Writer, columns []Column[T], rows []T) error {
	bw := bufio.NewWriter(w)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := writeRecord(bw, headers); err != nil {
		return err
	}

	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			fields[i] = col.Value(row)
		}
		if err := writeRecord(bw, fields); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
