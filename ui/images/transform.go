package images

import (
	"image"

	"github.com/disintegration/imaging"
)

// ApplyFlips returns img mirrored per the given axes. Horizontal flips around
// the vertical axis, vertical around the horizontal axis; the two are
// independent and commute. The source image is never mutated.
func ApplyFlips(img image.Image, horizontal, vertical bool) image.Image {
	if img == nil {
		return nil
	}
	if horizontal {
		img = imaging.FlipH(img)
	}
	if vertical {
		img = imaging.FlipV(img)
	}
	return img
}

// ScaleToFit scales src down so it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.Box)
}
