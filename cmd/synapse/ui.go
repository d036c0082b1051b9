package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// banner prints the command title
func banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s - %s\n\n", brand.Sprint("synapse"), subtitle)
}

// statusIcon returns a check or a cross
func statusIcon(ok bool) string {
	if ok {
		return good.Sprint("✓")
	}
	return bad.Sprint("✗")
}

// table prints an aligned table; cells may carry color escapes, so widths use visibleLen
func table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], visibleLen(cell))
			}
		}
	}

	var head, sep strings.Builder
	head.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		fmt.Fprintf(&head, "%-*s  ", widths[i], h)
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	subtle.Fprintln(w, strings.TrimRight(head.String(), " "))
	subtle.Fprintln(w, strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			if i < len(widths) {
				line.WriteString(cell + strings.Repeat(" ", widths[i]-visibleLen(cell)) + "  ")
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// visibleLen counts runes outside ANSI escape sequences
func visibleLen(s string) int {
	n, esc := 0, false
	for _, r := range s {
		switch {
		case esc:
			if r == 'm' {
				esc = false
			}
		case r == '\x1b':
			esc = true
		default:
			n++
		}
	}
	return n
}
