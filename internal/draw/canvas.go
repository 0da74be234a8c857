package draw

import (
	"io"
	"math"
	"sort"
)

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []RGB   // Flat slice: [y * termWidth + x]
	set            []bool  // Whether the pixel differs from the background
	background     RGB     // Color of unset pixels
	logicalWidth   float64 // Target/logical width
	logicalHeight  float64 // Target/logical height
	scaleX         float64 // termWidth / logicalWidth
	scaleY         float64 // (termHeight*2) / logicalHeight

	// Offset of the canvas inside the terminal (0-based columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by callers.
// termWidth/Height are the terminal cells the canvas covers.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]RGB, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = 0
	c.scaleY = 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(subPixelHeight) / c.logicalHeight
	}
}

// SetOffset sets the column and row offset of the canvas inside the terminal.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// SetBackground sets the color of unset pixels.
func (c *Canvas) SetBackground(bg RGB) {
	c.background = bg
}

// Background returns the color of unset pixels.
func (c *Canvas) Background() RGB {
	return c.background
}

// Clear resets all pixels to the background.
func (c *Canvas) Clear() {
	clear(c.set)
}

// setPixel sets a pixel at actual sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.set[i] = true
	}
}

// PixelAt returns the color at sub-pixel coordinates and whether it was set.
func (c *Canvas) PixelAt(x, y int) (RGB, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return c.background, false
	}
	i := y*c.termWidth + x
	if !c.set[i] {
		return c.background, false
	}
	return c.pixels[i], true
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col RGB) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col RGB) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a filled polygon with its outline.
// The outline guarantees shapes smaller than a pixel still show up.
func (c *Canvas) DrawPolygon(points []Point, col RGB) {
	switch len(points) {
	case 0:
		return
	case 1:
		c.SetFloat(points[0].X, points[0].Y, col)
		return
	case 2:
		c.DrawLine(points[0], points[1], col)
		return
	}

	c.fillPolygon(points, col)

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// DrawRegular draws a regular polygon centered at (cx, cy) in logical space.
// radius is in sub-pixels so shapes keep their aspect ratio whatever the
// logical scale; rotation is in degrees.
func (c *Canvas) DrawRegular(cx, cy, radius float64, sides int, rotation float64, col RGB) {
	if sides < 3 || c.scaleX == 0 || c.scaleY == 0 {
		return
	}
	points := c.BorrowPoints(sides)
	base := rotation * math.Pi / 180
	for i := range points {
		angle := base + 2*math.Pi*float64(i)/float64(sides)
		points[i] = Point{
			X: cx + math.Cos(angle)*radius/c.scaleX,
			Y: cy + math.Sin(angle)*radius/c.scaleY,
		}
	}
	c.DrawPolygon(points, col)
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col RGB) {
	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the whole canvas area to the writer using half-block
// characters: the upper sub-pixel is the foreground, the lower one the
// background. Colors are only re-sent when they change.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]

	for row := 0; row < c.termHeight; row++ {
		buf = appendCursor(buf, c.offsetCol+1, row+1+c.offsetRow)

		var fg, bg RGB
		fgValid, bgValid := false, false
		for col := 0; col < c.termWidth; col++ {
			top, _ := c.PixelAt(col, row*2)
			bottom, _ := c.PixelAt(col, row*2+1)

			if !bgValid || bg != bottom {
				buf = appendSGR(buf, 48, bottom)
				bg, bgValid = bottom, true
			}
			if top == bottom {
				buf = append(buf, ' ')
				continue
			}
			if !fgValid || fg != top {
				buf = appendSGR(buf, 38, top)
				fg, fgValid = top, true
			}
			buf = append(buf, string(BlockUpperHalf)...)
		}
		buf = append(buf, ColorReset...)
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the column count the canvas covers.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the row count the canvas covers.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row)
// relative to the canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
