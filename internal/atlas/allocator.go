package atlas

import "image"

// Rect is an allocated region of the atlas canvas.
type Rect struct {
	Min image.Point
	Max image.Point
}

// Dx returns the rectangle width.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the rectangle height.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Image returns the rectangle as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rectangle{Min: r.Min, Max: r.Max}
}

// Contains reports whether the atlas-space point (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.Min.X) && x <= float64(r.Max.X) &&
		y >= float64(r.Min.Y) && y <= float64(r.Max.Y)
}

// Allocator implements shelf-based rectangle packing.
//
// Rectangles are placed left-to-right on horizontal shelves. A shelf is as tall
// as the tallest item placed on it; only the last shelf may grow. When nothing
// fits, a new shelf is opened below the last one. The same sequence of requests
// always yields the same layout.
type Allocator struct {
	width   int
	height  int
	shelves []shelf

	usedArea int
}

// shelf represents a horizontal strip in the atlas.
type shelf struct {
	y      int // Y position of shelf top
	height int // Tallest item so far
	x      int // Next free X position
}

// NewAllocator creates an allocator for a width x height canvas.
func NewAllocator(width, height int) *Allocator {
	return &Allocator{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate finds space for a w x h rectangle.
// Returns false if the rectangle cannot be placed.
func (a *Allocator) Allocate(w, h int) (Rect, bool) {
	if w <= 0 || h <= 0 || w > a.width || h > a.height {
		return Rect{}, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+w > a.width {
			continue
		}
		if h > s.height {
			// Only the last shelf can grow, and only into free space below it.
			if i != len(a.shelves)-1 || s.y+h > a.height {
				continue
			}
			s.height = h
		}
		r := a.place(s.x, s.y, w, h)
		s.x += w
		return r, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height
	}
	if newY+h > a.height {
		return Rect{}, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: w})
	return a.place(0, newY, w, h), true
}

func (a *Allocator) place(x, y, w, h int) Rect {
	a.usedArea += w * h
	return Rect{
		Min: image.Point{X: x, Y: y},
		Max: image.Point{X: x + w, Y: y + h},
	}
}

// Utilization returns the fraction of the canvas in use (0.0 to 1.0).
func (a *Allocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// ShelfCount returns the number of shelves currently in use.
func (a *Allocator) ShelfCount() int {
	return len(a.shelves)
}
