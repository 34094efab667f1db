package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Bounding boxes for stored gallery images.
const (
	galleryMaxWidth  = 1920
	galleryMaxHeight = 1080
	thumbMaxWidth    = 400
	thumbMaxHeight   = 300
)

// ImageProcessor normalizes uploaded photos for the hotel gallery.
type ImageProcessor struct {
	quality int
}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// ProcessGalleryImage decodes an uploaded image and produces two JPEGs: the
// display version capped to the gallery bounding box, and a thumbnail.
func (p *ImageProcessor) ProcessGalleryImage(content io.Reader) (full io.Reader, thumb io.Reader, err error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fullImg := imaging.Fit(img, galleryMaxWidth, galleryMaxHeight, imaging.Lanczos)
	thumbImg := imaging.Fit(img, thumbMaxWidth, thumbMaxHeight, imaging.Lanczos)

	fullBuf := new(bytes.Buffer)
	if err := jpeg.Encode(fullBuf, fullImg, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, nil, fmt.Errorf("failed to encode image: %w", err)
	}
	thumbBuf := new(bytes.Buffer)
	if err := jpeg.Encode(thumbBuf, thumbImg, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return fullBuf, thumbBuf, nil
}
