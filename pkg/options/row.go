package options

import "strings"

// Row is one line of the option table.
type Row struct {
	SwitchName  string
	RawOptions  string
	Description string
	Line        int // 1-based, relative to the table body
}

// ParseOptionTable splits a table body (no header or separator row) into rows.
// Every line must have exactly three pipe-separated columns.
func ParseOptionTable(section string) ([]Row, error) {
	lines := strings.Split(section, "\n")
	rows := make([]Row, 0, len(lines))

	for i, line := range lines {
		cols := strings.Split(line, "|")
		if len(cols) != 3 {
			return nil, &RowError{Line: i + 1, Text: line, Columns: len(cols)}
		}

		row := Row{
			SwitchName:  strings.TrimSpace(cols[0]),
			RawOptions:  strings.TrimSpace(cols[1]),
			Description: strings.TrimSpace(cols[2]),
			Line:        i + 1,
		}

		// "dfmt_foo (since 0.9)" carries a note that belongs to the description
		if name, note, ok := strings.Cut(row.SwitchName, " "); ok {
			row.SwitchName = name
			row.Description += " " + note
		}

		rows = append(rows, row)
	}

	return rows, nil
}
