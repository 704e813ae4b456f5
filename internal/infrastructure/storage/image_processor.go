package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Cover bounding box. Larger images are scaled down preserving aspect ratio.
const (
	CoverMaxWidth  = 600
	CoverMaxHeight = 900
)

var ErrUnsupportedImage = errors.New("unsupported image")

type ImageProcessor struct {
	MaxSize   int64 // bytes (default: 5MB)
	MaxPixels int64 // width*height (default: 40MP)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		MaxSize:   5 * 1024 * 1024,
		MaxPixels: 40_000_000,
	}
}

// ValidateImage accepts JPEG or PNG data no larger than MaxSize whose
// declared dimensions stay within MaxPixels. Only the header is decoded.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrUnsupportedImage, p.MaxSize/(1024*1024))
	}
	return p.checkHeader(data)
}

func (p *ImageProcessor) checkHeader(data []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: not an image: %v", ErrUnsupportedImage, err)
	}
	if format != "jpeg" && format != "png" {
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrUnsupportedImage, format)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedImage, cfg.Width, cfg.Height, p.MaxPixels)
	}
	return nil
}

// ProcessCover fits the image into the cover box and re-encodes it as JPEG quality 90.
func (p *ImageProcessor) ProcessCover(data []byte) ([]byte, error) {
	if err := p.checkHeader(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", ErrUnsupportedImage, err)
	}

	resized := imaging.Fit(img, CoverMaxWidth, CoverMaxHeight, imaging.Lanczos)

	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode cover: %w", err)
	}
	return b.Bytes(), nil
}
