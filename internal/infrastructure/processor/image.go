package processor

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Output is always webp; quality tier depends on whether compression
// was requested and survived the size floor.
const (
	webpQualityDefault    = 80
	webpQualityCompressed = 60
)

type ImageExecutor struct {
}

func NewImage() *ImageExecutor {
	return &ImageExecutor{}
}

func (p *ImageExecutor) Probe(path string) (dto.AssetMeta, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("ImageExecutor - Probe - decodeImageFile: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("ImageExecutor - Probe - os.Stat: %w", err)
	}

	bounds := img.Bounds()

	return dto.AssetMeta{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   info.Size(),
	}, nil
}

func (p *ImageExecutor) Transform(ctx context.Context, inputPath, outputPath string, opts dto.ImageOptions) error {
	img, err := decodeImageFile(inputPath)
	if err != nil {
		return fmt.Errorf("ImageExecutor - Transform - decodeImageFile: %w", err)
	}

	if opts.Crop != nil {
		rect := image.Rect(
			opts.Crop.X,
			opts.Crop.Y,
			opts.Crop.X+opts.Crop.Width,
			opts.Crop.Y+opts.Crop.Height,
		)
		img = imaging.Crop(img, rect)
	}

	quality := webpQualityDefault
	if opts.Compress {
		quality = webpQualityCompressed
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("ImageExecutor - Transform - os.Create: %w", err)
	}
	defer out.Close()

	err = webp.Encode(out, img, &webp.Options{Quality: float32(quality)})
	if err != nil {
		return fmt.Errorf("ImageExecutor - Transform - webp.Encode: %w", err)
	}

	return nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decodeImageFile - os.Open: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err == nil {
		return img, nil
	}

	// imaging covers jpeg/png/gif/tiff/bmp; fall back to webp input.
	if _, seekErr := f.Seek(0, 0); seekErr != nil {
		return nil, fmt.Errorf("decodeImageFile - f.Seek: %w", seekErr)
	}

	img, webpErr := webp.Decode(f)
	if webpErr != nil {
		return nil, fmt.Errorf("decodeImageFile - imaging.Decode: %w", err)
	}

	return img, nil
}
