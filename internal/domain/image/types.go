package image

import "image"

// Decoded is the canonical representation every acquisition path produces:
// the raster dimensions, the detected container format, the decoded pixels
// and the original compressed bytes handed to the engine. A Decoded value is
// either fully valid or never returned; callers only see classified errors.
type Decoded struct {
	Width  int
	Height int
	Format string
	Pixels image.Image
	Raw    []byte
}

// Empty reports whether the image carries no usable raster.
func (d *Decoded) Empty() bool {
	return d == nil || d.Width <= 0 || d.Height <= 0 || d.Pixels == nil
}
