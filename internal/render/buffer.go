package render

import "mandelbox-renderer/internal/mathutil"

// FrameBuffer holds linear RGB pixels as one flat slice.
// Rows are stored bottom to top: row 0 is the bottom edge of the view.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []mathutil.Vec3 // len = W*H, initialized to the background
}

// NewFrameBuffer allocates a buffer filled with background.
func NewFrameBuffer(w, h int, background mathutil.Vec3) *FrameBuffer {
	pix := make([]mathutil.Vec3, w*h)
	if background != (mathutil.Vec3{}) {
		for i := range pix {
			pix[i] = background
		}
	}
	return &FrameBuffer{Width: w, Height: h, Pix: pix}
}

// At returns the pixel at column x, row y.
func (fb *FrameBuffer) At(x, y int) mathutil.Vec3 {
	return fb.Pix[y*fb.Width+x]
}

// Set writes the pixel at column x, row y.
func (fb *FrameBuffer) Set(x, y int, c mathutil.Vec3) {
	fb.Pix[y*fb.Width+x] = c
}

// Row returns the pixels of row y, sharing storage with fb.
func (fb *FrameBuffer) Row(y int) []mathutil.Vec3 {
	return fb.Pix[y*fb.Width : (y+1)*fb.Width]
}
