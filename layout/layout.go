// Package layout tiles blocks of varying size into a fixed canvas.
//
// All blocks share one scale factor,
// so strokes have the same thickness in every block.
// Blocks are never stretched, and never overlap.
package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

var (
	// ErrNoBlocks is returned when there is nothing to lay out.
	ErrNoBlocks = errors.New("no blocks")
	// ErrDegenerate is returned for a block without positive, finite size.
	ErrDegenerate = errors.New("degenerate block")
	// ErrCanvas is returned for a canvas without positive size.
	ErrCanvas = errors.New("bad canvas size")
	// ErrMode is returned for an unknown Mode.
	ErrMode = errors.New("unknown layout mode")
)

// A Mode is a way of placing blocks in their grid cells.
type Mode int

const (
	// Centered sizes cells by the largest block, scaled to fit,
	// and centers each block in its cell and the grid in the canvas.
	Centered Mode = iota
	// EdgeToEdge partitions the canvas into equal cells
	// with no gaps, and places each block at its cell's top-left.
	EdgeToEdge
)

func (m Mode) String() string {
	if m == EdgeToEdge {
		return "edge-to-edge"
	}
	return "centered"
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	switch strings.ToLower(s) {
	case "centered", "center":
		*m = Centered
	case "edge-to-edge", "edge":
		*m = EdgeToEdge
	default:
		return fmt.Errorf("unknown layout mode %q, want centered or edge-to-edge", s)
	}
	return nil
}

// Options control the grid.
type Options struct {
	Mode Mode
	// Cols is the number of grid columns.
	// If Cols < 1, the grid is as near square as possible.
	Cols int
}

// A Size is the intrinsic size of a block.
type Size struct {
	W, H float64
}

// A Placement is where a block goes on the canvas.
type Placement struct {
	// Index is the index of the block in the input.
	Index int
	// Scale is the scale factor; it is the same for all placements.
	Scale float64
	// Cell is the block's grid cell.
	Cell image.Rectangle
	// Rect is the scaled block; Rect.Min is its offset.
	Rect image.Rectangle
}

// Transform returns the affine transform
// from the block's intrinsic coordinates to the canvas.
func (p Placement) Transform() f64.Aff3 {
	return f64.Aff3{
		p.Scale, 0, float64(p.Rect.Min.X),
		0, p.Scale, float64(p.Rect.Min.Y),
	}
}

// Grid returns the number of columns and rows for n blocks.
// If cols < 1, the number of columns is ceil(sqrt(n)).
func Grid(n, cols int) (int, int) {
	if n < 1 {
		return 0, 0
	}
	if cols < 1 {
		cols = int(math.Ceil(math.Sqrt(float64(n))))
	}
	return cols, (n + cols - 1) / cols
}

// Layout returns one placement for each block, in order.
// Blocks are placed in row-major order.
func Layout(sizes []Size, canvas image.Point, opts Options) ([]Placement, error) {
	if len(sizes) == 0 {
		return nil, ErrNoBlocks
	}
	if opts.Mode != Centered && opts.Mode != EdgeToEdge {
		return nil, fmt.Errorf("%w: %d", ErrMode, int(opts.Mode))
	}
	if canvas.X < 1 || canvas.Y < 1 {
		return nil, fmt.Errorf("%w: %v", ErrCanvas, canvas)
	}
	var maxW, maxH float64
	for i, sz := range sizes {
		if !positive(sz.W) || !positive(sz.H) {
			return nil, fmt.Errorf("%w: block %d is %v×%v", ErrDegenerate, i, sz.W, sz.H)
		}
		maxW = math.Max(maxW, sz.W)
		maxH = math.Max(maxH, sz.H)
	}

	cols, rows := Grid(len(sizes), opts.Cols)
	cellW := float64(canvas.X) / float64(cols)
	cellH := float64(canvas.Y) / float64(rows)
	scale := math.Min(cellW/maxW, cellH/maxH)

	var origin image.Point
	if opts.Mode == Centered {
		cellW, cellH = maxW*scale, maxH*scale
		origin = image.Pt(
			int((float64(canvas.X)-cellW*float64(cols))/2),
			int((float64(canvas.Y)-cellH*float64(rows))/2),
		)
	}

	ps := make([]Placement, len(sizes))
	for i, sz := range sizes {
		col, row := i%cols, i/cols
		size := image.Pt(int(sz.W*scale), int(sz.H*scale))
		var cell image.Rectangle
		var at image.Point
		switch opts.Mode {
		case EdgeToEdge:
			cell = image.Rect(
				col*canvas.X/cols, row*canvas.Y/rows,
				(col+1)*canvas.X/cols, (row+1)*canvas.Y/rows,
			)
			at = cell.Min
		case Centered:
			cell = image.Rect(
				int(float64(col)*cellW), int(float64(row)*cellH),
				int(float64(col+1)*cellW), int(float64(row+1)*cellH),
			).Add(origin)
			at = image.Pt(
				int(float64(col)*cellW+(cellW-float64(size.X))/2),
				int(float64(row)*cellH+(cellH-float64(size.Y))/2),
			).Add(origin)
		}
		ps[i] = Placement{
			Index: i,
			Scale: scale,
			Cell:  cell,
			Rect:  image.Rectangle{Min: at, Max: at.Add(size)},
		}
	}
	return ps, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
