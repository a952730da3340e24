package pipeline

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
)

// Compression floors: inputs at or below the floor are not worth the
// CPU cost of recompression and keep the default quality tier.
const (
	imageCompressFloor int64 = 500 << 10  // 500 KiB
	videoCompressFloor int64 = 1536 << 10 // 1.5 MiB
	pdfCompressFloor   int64 = 50 << 10   // 50 KiB
)

// validateImageOptions degrades invalid parameters instead of failing:
// a crop outside the frame is replaced by the full frame, a request to
// compress a small file is dropped.
func validateImageOptions(
	ctx context.Context,
	meta dto.AssetMeta,
	props *entity.ImageProps,
	rlog usecase.EventAppender,
) dto.ImageOptions {
	opts := dto.ImageOptions{}

	if props == nil {
		return opts
	}

	if props.Crop != nil {
		if cropFits(*props.Crop, meta.Width, meta.Height) {
			opts.Crop = props.Crop
		} else {
			rlog.Append(ctx, entity.Warning, fmt.Sprintf(
				"crop rectangle %dx%d at (%d,%d) exceeds image bounds %dx%d, using full frame",
				props.Crop.Width, props.Crop.Height, props.Crop.X, props.Crop.Y,
				meta.Width, meta.Height,
			), nil)

			opts.Crop = &entity.CropRect{X: 0, Y: 0, Width: meta.Width, Height: meta.Height}
		}
	}

	if props.Compress {
		if meta.Size > imageCompressFloor {
			opts.Compress = true
		} else {
			rlog.Append(ctx, entity.Processing, fmt.Sprintf(
				"file size %d bytes does not exceed %d bytes, skipping compression",
				meta.Size, imageCompressFloor,
			), nil)
		}
	}

	return opts
}

// validateVideoOptions omits an invalid crop or trim entirely; unlike
// the image path there is no full-frame substitute, the filter is just
// not emitted.
func validateVideoOptions(
	ctx context.Context,
	meta dto.AssetMeta,
	props *entity.VideoProps,
	rlog usecase.EventAppender,
) dto.VideoOptions {
	opts := dto.VideoOptions{}

	if props == nil {
		return opts
	}

	if props.Crop != nil {
		if cropFits(*props.Crop, meta.Width, meta.Height) {
			opts.Crop = props.Crop
		} else {
			rlog.Append(ctx, entity.Warning, fmt.Sprintf(
				"crop rectangle %dx%d at (%d,%d) exceeds video bounds %dx%d, skipping crop",
				props.Crop.Width, props.Crop.Height, props.Crop.X, props.Crop.Y,
				meta.Width, meta.Height,
			), nil)
		}
	}

	if props.Trim != nil {
		if trimFits(*props.Trim, meta.Duration) {
			opts.Trim = props.Trim
		} else {
			rlog.Append(ctx, entity.Warning, fmt.Sprintf(
				"trim window [%g, %g] is invalid for duration %gs, skipping trim",
				props.Trim.Start, props.Trim.End, meta.Duration,
			), nil)
		}
	}

	if props.Compress {
		if meta.Size > videoCompressFloor {
			opts.Compress = true
		} else {
			rlog.Append(ctx, entity.Processing, fmt.Sprintf(
				"file size %d bytes does not exceed %d bytes, skipping compression",
				meta.Size, videoCompressFloor,
			), nil)
		}
	}

	return opts
}

func validatePDFOptions(
	ctx context.Context,
	size int64,
	props *entity.PDFProps,
	rlog usecase.EventAppender,
) dto.PDFOptions {
	opts := dto.PDFOptions{}

	if props == nil || !props.Compress {
		return opts
	}

	if size > pdfCompressFloor {
		opts.Compress = true
	} else {
		rlog.Append(ctx, entity.Processing, fmt.Sprintf(
			"file size %d bytes does not exceed %d bytes, skipping compression",
			size, pdfCompressFloor,
		), nil)
	}

	return opts
}

func cropFits(c entity.CropRect, width, height int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X+c.Width <= width && c.Y+c.Height <= height
}

func trimFits(t entity.TrimWindow, duration float64) bool {
	return t.Start >= 0 && t.End <= duration && t.Start < t.End
}
