// Package raster implements paint.Surface on a gg software context.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"PollockBoard/internal/paint"
)

// ErrInvalidSize is returned for non-positive canvas dimensions.
var ErrInvalidSize = errors.New("invalid canvas size")

// Background is the color a cleared canvas is filled with.
var Background = gg.White

// Canvas is a mutable RGBA raster. All methods are safe for concurrent use:
// effects paint from the UI goroutine while the renderer reads snapshots.
type Canvas struct {
	mu     sync.Mutex
	dc     *gg.Context
	fill   paint.Color
	alpha  float64
	blend  gg.BlendMode
	logger *log.Logger
}

var _ paint.Surface = (*Canvas)(nil)

// New returns a cleared canvas of the given size.
func New(width, height int, logger *log.Logger) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Canvas{dc: gg.NewContext(width, height), logger: logger}
	c.Clear()
	return c, nil
}

// Clear fills the canvas with the background and resets the paint state
// to full alpha and normal blending.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Canvas) resetLocked() {
	c.dc.ClearPath()
	c.dc.Identity()
	c.dc.ClearWithColor(Background)
	c.alpha = 1
	c.blend = gg.BlendNormal
	c.dc.SetBlendMode(c.blend)
}

// Resize changes the canvas dimensions. Existing pixels are copied to the
// top-left corner of the new raster; whatever falls outside is lost.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if width == c.dc.Width() && height == c.dc.Height() {
		return nil
	}
	old := c.dc.ResizeTarget()
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	c.resetLocked()
	copyPixels(c.dc.ResizeTarget(), old)

	c.logger.Debug("canvas resized", "from", fmt.Sprintf("%dx%d", old.Width(), old.Height()), "to", fmt.Sprintf("%dx%d", width, height))
	return nil
}

// copyPixels copies the overlapping top-left region of src into dst.
func copyPixels(dst, src *gg.Pixmap) {
	w := min(dst.Width(), src.Width())
	h := min(dst.Height(), src.Height())
	d, s := dst.Data(), src.Data()
	for y := 0; y < h; y++ {
		copy(d[y*dst.Width()*4:y*dst.Width()*4+w*4], s[y*src.Width()*4:y*src.Width()*4+w*4])
	}
}

func (c *Canvas) SetFill(col paint.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fill = col
}

// SetAlpha sets the opacity of the following primitive, clamped to [0,1].
func (c *Canvas) SetAlpha(a float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alpha = math.Max(0, math.Min(1, a))
}

func (c *Canvas) FillEllipse(center paint.Point, rx, ry, rotation float64) {
	if !center.Finite() || !finite(rx, ry, rotation) {
		c.logger.Debug("dropping non-finite ellipse", "x", center.X, "y", center.Y, "rx", rx, "ry", ry)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if rotation != 0 {
		c.dc.Push()
		c.dc.RotateAbout(rotation, center.X, center.Y)
	}
	// Path points are transformed as they are added, so the matrix can be
	// restored before filling.
	c.dc.DrawEllipse(center.X, center.Y, rx, ry)
	if rotation != 0 {
		c.dc.Pop()
	}
	c.fillLocked()
}

func (c *Canvas) FillCircle(center paint.Point, r float64) {
	if !center.Finite() || !finite(r) {
		c.logger.Debug("dropping non-finite circle", "x", center.X, "y", center.Y, "r", r)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.DrawCircle(center.X, center.Y, r)
	c.fillLocked()
}

func (c *Canvas) FillPolygon(points []paint.Point) {
	if len(points) < 3 {
		return
	}
	for _, p := range points {
		if !p.Finite() {
			c.logger.Debug("dropping non-finite polygon", "points", len(points))
			return
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.fillLocked()
}

func (c *Canvas) fillLocked() {
	rgba := c.fill.RGBA()
	c.dc.SetRGBA(rgba.R, rgba.G, rgba.B, c.alpha)
	if err := c.dc.Fill(); err != nil {
		c.logger.Warn("fill failed", "err", err)
	}
}

// Bounds returns the canvas size in pixels.
func (c *Canvas) Bounds() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.dc.Width()), float64(c.dc.Height())
}

// Size returns the canvas size in whole pixels.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.Width(), c.dc.Height()
}

// Image returns a copy of the current raster.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.ResizeTarget().ToImage()
}

// At returns the pixel at x, y.
func (c *Canvas) At(x, y int) gg.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.ResizeTarget().GetPixel(x, y)
}

// Alpha returns the opacity the next primitive will use.
func (c *Canvas) Alpha() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alpha
}

// BlendMode returns the blend mode the next primitive will use.
func (c *Canvas) BlendMode() gg.BlendMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blend
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.Close()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
