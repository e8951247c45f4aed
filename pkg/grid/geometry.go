package grid

import (
	"fmt"
	"math"
)

const (
	// Rows is fixed: one row per weekday, Monday first.
	Rows = 7
	// MinColumns is the narrowest grid a widget host should request.
	MinColumns = 4

	// MinDays and MaxDays bound the supported history window.
	MinDays = 14
	MaxDays = 365
)

// Geometry is the computed cell layout for one render call. The grid's
// bounding box (Columns*CellSize by Rows*CellSize) is centered on the canvas.
type Geometry struct {
	Rows      int
	Columns   int
	CellSize  int
	Spacing   int
	DotRadius float64
	OriginX   float64
	OriginY   float64
}

// ComputeGeometry derives the layout for totalCells cells on a canvas of the
// given size. totalCells includes any lead or calendar padding, so the column
// count always reflects what is actually drawn. Cell size is the limiting
// dimension of width-per-column vs height-per-row, which keeps dots circular
// and the grid inside the canvas.
func ComputeGeometry(totalCells, width, height int) (Geometry, error) {
	if totalCells < 1 {
		return Geometry{}, fmt.Errorf("totalCells must be at least 1, got %d", totalCells)
	}
	if width < 1 || height < 1 {
		return Geometry{}, fmt.Errorf("canvas must have positive dimensions, got %dx%d", width, height)
	}

	columns := (totalCells + Rows - 1) / Rows

	cellSize := min(width/columns, height/Rows)
	if cellSize < 1 {
		// Extreme compression: keep a degenerate but valid layout rather
		// than failing the render.
		cellSize = 1
	}

	spacing := int(math.Round(float64(cellSize) * 0.30))
	if spacing < 2 {
		spacing = 2
	}
	dotSize := cellSize - spacing

	return Geometry{
		Rows:      Rows,
		Columns:   columns,
		CellSize:  cellSize,
		Spacing:   spacing,
		DotRadius: float64(dotSize) / 2,
		OriginX:   float64(width-columns*cellSize) / 2,
		OriginY:   float64(height-Rows*cellSize) / 2,
	}, nil
}

// CellCenter returns the center point of the dot at the given column and row.
func (g Geometry) CellCenter(col, row int) (float64, float64) {
	x := g.OriginX + float64(col*g.CellSize) + float64(g.CellSize)/2
	y := g.OriginY + float64(row*g.CellSize) + float64(g.CellSize)/2
	return x, y
}
