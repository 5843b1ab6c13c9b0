// ABOUTME: CSV tokenizer for the Google Sheets export format
// ABOUTME: Turns raw delimited text into a grid of trimmed string cells
package gsheets

import "strings"

// Tokenize splits raw CSV text into a rectangular-ish grid of cells. Rows may
// be ragged. An empty input line still yields a one-cell row; callers that
// care filter those themselves.
//
// Quote handling is deliberately loose: a double quote flips the in-quote
// flag, a comma splits only outside quotes, and balance is never validated.
// An unterminated quote therefore swallows the rest of the line's commas.
func Tokenize(raw string) [][]string {
	lines := strings.Split(raw, "\n")
	grid := make([][]string, 0, len(lines))

	for _, line := range lines {
		var cells []string
		var cur strings.Builder
		inQuote := false

		for _, ch := range line {
			switch {
			case ch == '"':
				inQuote = !inQuote
				cur.WriteRune(ch)
			case ch == ',' && !inQuote:
				cells = append(cells, cur.String())
				cur.Reset()
			default:
				cur.WriteRune(ch)
			}
		}
		cells = append(cells, cur.String())

		for i := range cells {
			cells[i] = cleanCell(cells[i])
		}
		grid = append(grid, cells)
	}

	return grid
}

// cleanCell trims whitespace, strips one matching pair of wrapping quotes,
// and collapses doubled quotes per standard CSV escaping.
func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) >= 2 && cell[0] == '"' && cell[len(cell)-1] == '"' {
		cell = cell[1 : len(cell)-1]
	}
	return strings.ReplaceAll(cell, `""`, `"`)
}
