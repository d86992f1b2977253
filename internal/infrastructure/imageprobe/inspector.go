package imageprobe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"

	"github.com/kirillkom/planetary-dem/internal/core/ports"
)

const DefaultThumbnailSize = 256

var ErrUnsupportedImage = errors.New("unsupported image content")

// supportedFormats are the decoder names the DEM generator accepts. imaging
// registers more decoders (bmp) than that, so DecodeConfig alone is not enough.
var supportedFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"tiff": true,
}

type Inspector struct {
	thumbnailSize int
}

func NewInspector(thumbnailSize int) *Inspector {
	if thumbnailSize <= 0 {
		thumbnailSize = DefaultThumbnailSize
	}
	return &Inspector{thumbnailSize: thumbnailSize}
}

func (i *Inspector) Inspect(data []byte) (ports.ImageInfo, error) {
	if len(data) == 0 {
		return ports.ImageInfo{}, fmt.Errorf("inspect image: %w: empty content", ErrUnsupportedImage)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ports.ImageInfo{}, fmt.Errorf("inspect image: %w: %v", ErrUnsupportedImage, err)
	}
	if !supportedFormats[format] {
		return ports.ImageInfo{}, fmt.Errorf("inspect image: %w: format %s", ErrUnsupportedImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ports.ImageInfo{}, fmt.Errorf("inspect image: %w: %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}
	return ports.ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Thumbnail fits the image inside a square box and writes it as PNG.
func (i *Inspector) Thumbnail(data []byte, w io.Writer) error {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image for thumbnail: %w", err)
	}
	thumb := imaging.Fit(img, i.thumbnailSize, i.thumbnailSize, imaging.Lanczos)
	if err := imaging.Encode(w, thumb, imaging.PNG); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}
