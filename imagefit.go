package layerfill

import "errors"

// errZeroExtent guards the cover-fit division.
var errZeroExtent = errors.New("image has zero extent")

// CoverScale computes the uniform scale factor that makes content of the
// given size fully cover the frame: the larger of the width and height
// ratios. The scaled content may overflow the frame on one axis.
func CoverScale(frame, content Bounds) (float64, error) {
	if content.Width() <= 0 || content.Height() <= 0 {
		return 0, errZeroExtent
	}
	scale := frame.Width() / content.Width()
	if h := frame.Height() / content.Height(); h > scale {
		scale = h
	}
	return scale, nil
}

// FitImage imports the image at path into the canvas and cover-fits it to
// frame: paste in front of the frame, scale uniformly about the pasted
// content's own center, clip to exactly the frame's shape, then center on
// the frame. Any failure is reported as an *ImageError and leaves the
// record's text slots untouched.
func FitImage(canvas Canvas, path string, frame Frame) error {
	layer, err := canvas.PlaceImage(path, frame)
	if err != nil {
		return &ImageError{Path: path, Err: err}
	}

	fb := frame.Bounds()
	scale, err := CoverScale(fb, layer.Bounds())
	if err != nil {
		return &ImageError{Path: path, Err: err}
	}
	if err := layer.ScaleAboutCenter(scale); err != nil {
		return &ImageError{Path: path, Err: err}
	}
	if err := layer.ClipTo(frame); err != nil {
		return &ImageError{Path: path, Err: err}
	}
	if err := layer.MoveCenterTo(fb.CenterX(), fb.CenterY()); err != nil {
		return &ImageError{Path: path, Err: err}
	}
	return nil
}
