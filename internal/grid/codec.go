package grid

import "strings"

const (
	FieldSep = ","
	RowSep   = "\n"
)

// Parse splits text into rows on newlines and cells on commas. A trailing
// newline yields a trailing single-cell empty row. Quotes are not
// interpreted.
func Parse(text string) Grid {
	lines := strings.Split(text, RowSep)
	g := make(Grid, len(lines))
	for i, line := range lines {
		g[i] = strings.Split(line, FieldSep)
	}
	return g
}

// Serialize is the inverse of Parse for cells free of commas and newlines.
func Serialize(g Grid) string {
	var sb strings.Builder
	for i, row := range g {
		if i > 0 {
			sb.WriteString(RowSep)
		}
		sb.WriteString(strings.Join(row, FieldSep))
	}
	return sb.String()
}
