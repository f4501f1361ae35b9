package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sightline/pkg/query"
)

// WriteClearanceCSV writes a clearance grid as <id>.csv under dir, one line
// per grid row. Clearances arrive column-major (the grid order), so cell
// (row, col) lives at index col*nRows+row.
func WriteClearanceCSV(dir string, res query.Result, nCols, nRows int) error {
	if nCols*nRows != len(res.Clearances) {
		return fmt.Errorf("rectangle %d: %d clearances do not fill a %dx%d grid", res.ID, len(res.Clearances), nCols, nRows)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create clearance dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.csv", res.ID)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, nCols)
	for row := 0; row < nRows; row++ {
		for col := 0; col < nCols; col++ {
			record[col] = strconv.FormatFloat(res.Clearances[col*nRows+row], 'e', 2, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
