package ui

// resolveIndex maps the -1 shorthand (last row / last column) onto concrete
// indices for a rows x cols grid. Other values pass through unchanged.
func resolveIndex(row, col, rows, cols int) (int, int) {
	if row == -1 {
		row = rows - 1
	}
	if col == -1 {
		col = cols - 1
	}
	return row, col
}

func inBounds(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}

// keyFromIndex returns the row-major key index of (row, col) after -1 resolution.
func keyFromIndex(row, col, rows, cols int) int {
	row, col = resolveIndex(row, col, rows, cols)
	return row*cols + col
}

// indexFromKey is the inverse of keyFromIndex. Malformed negative keys
// clamp to row 0.
func indexFromKey(key, cols int) (int, int) {
	col := ((key % cols) + cols) % cols
	row := (key - col) / cols
	if row < 0 {
		row = 0
	}
	return row, col
}
