package grid_test

import (
	"fmt"

	"github.com/fastscape-go/fastscapelib/grid"
)

// ExampleRaster demonstrates building a small raster with a fixed-value
// left border and inspecting the status of one left-border node.
func ExampleRaster() {
	r, err := grid.NewRaster([2]int{3, 3}, [2]float64{1, 1},
		grid.WithBorders(grid.Core, grid.Core, grid.FixedValue, grid.Core))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("size:", r.Size())
	fmt.Println("left border status:", r.Status(r.Index(1, 0)))
}
