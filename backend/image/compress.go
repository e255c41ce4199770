package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/apex/log"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
)

const (
	// The remote classifier scores thumbnails just as well as full photos,
	// so cap the payload we ship to it.
	maxClassifierDimension = 512
	jpegQuality            = 85
)

// orientation reads the EXIF orientation tag, defaulting to 1.
func orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// normalizeOrientation bakes the EXIF orientation into the pixels so the
// classifier never sees a sideways photo. Only the rotations that change
// the aspect are handled; mirrored variants are close enough for scoring.
func normalizeOrientation(img image.Image, orient int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch orient {
	case 3: // 180 degrees
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(w-1-x, h-1-y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		return out
	case 6: // 90 clockwise
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(h-1-y, x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		return out
	case 8: // 90 counter-clockwise
		out := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Set(y, w-1-x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		return out
	}
	return img
}

// ShrinkForClassifier downscales a JPEG to at most 512px on the longer side,
// fixing the EXIF orientation on the way. On any decode problem the original
// bytes come back so classification can still be attempted.
func ShrinkForClassifier(data []byte) []byte {
	orient := orientation(data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warnf("Could not decode report image, sending as-is: %v", err)
		return data
	}
	if orient != 1 {
		img = normalizeOrientation(img, orient)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxClassifierDimension && h <= maxClassifierDimension && orient == 1 {
		return data
	}

	scale := float64(maxClassifierDimension) / float64(w)
	if s := float64(maxClassifierDimension) / float64(h); s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	newW, newH := int(float64(w)*scale), int(float64(h)*scale)

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		log.Warnf("Could not re-encode report image, sending as-is: %v", err)
		return data
	}
	return buf.Bytes()
}

// Validate decodes the image header to confirm the upload is a real image.
func Validate(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("not a decodable image: %w", err)
	}
	return nil
}
