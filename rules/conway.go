package rules

import "github.com/cheesec4ke/conway/model"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Next produces the successor generation. The input grid is read as a
// snapshot and never mutated; the successor is drawn from the pool
// when one is provided.
func Next(g *model.Grid, pool *model.GridPool) *model.Grid {
	width, height := g.GetWidth(), g.GetHeight()

	var next *model.Grid
	if pool != nil {
		next = pool.Get(width, height)
	} else {
		next = model.NewGrid(width, height)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ApplyConwayRules(g.Neighbors(x, y), g.Get(x, y)) {
				next.Set(x, y, true)
			}
		}
	}
	return next
}
