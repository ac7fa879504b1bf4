package model

import (
	"fmt"
	"math/rand"
	"strings"
)

// Grid represents the game board for a single generation. Cells are
// stored in a flat row-major buffer; dimensions are fixed for the
// lifetime of the grid.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewGrid creates an empty grid with the specified dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// NewRandomGrid creates a grid where each cell is independently alive
// with probability 0.5, drawn from the provided source.
func NewRandomGrid(width, height int, rng *rand.Rand) *Grid {
	g := NewGrid(width, height)
	for i := range g.cells {
		g.cells[i] = rng.Intn(2) == 1
	}
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// index validates coordinates and returns the linear buffer offset.
// Out-of-range access is a defect in the caller, not a recoverable
// error.
func (g *Grid) index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("grid access out of range: (%d,%d) on %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) bool {
	return g.cells[g.index(x, y)]
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) {
	g.cells[g.index(x, y)] = alive
}

// Neighbors counts the living cells adjacent to (x, y). Offsets
// falling outside the grid are not counted; nothing wraps to the
// opposite edge.
func (g *Grid) Neighbors(x, y int) int {
	// Calculate bounds once using efficient integer min/max
	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	count := 0
	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if g.cells[ny*g.width+nx] {
				count++
			}
		}
	}
	return count
}

// Population returns the total number of living cells
func (g *Grid) Population() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// Fingerprint returns the canonical flattening of the grid, usable as
// a map key. Two grids share a fingerprint exactly when their
// dimensions and cell contents match.
func (g *Grid) Fingerprint() string {
	var b strings.Builder
	b.Grow(len(g.cells) + 16)
	fmt.Fprintf(&b, "%dx%d:", g.width, g.height)
	for _, alive := range g.cells {
		if alive {
			b.WriteByte(1)
		} else {
			b.WriteByte(0)
		}
	}
	return b.String()
}

// Reset resizes the grid buffer for reuse at the given dimensions.
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height
	if len(g.cells) != width*height {
		g.cells = make([]bool, width*height)
		return
	}
	g.Clear()
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}
