package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	// AssetStore talks plain HTTP to caller-supplied signed URLs.
	AssetStore interface {
		Classify(ctx context.Context, url string) entity.AssetKind
		Exists(ctx context.Context, url string) bool
		Download(ctx context.Context, url, dest string) error
		UploadFile(ctx context.Context, url, path string) error
		UploadBytes(ctx context.Context, url string, data []byte) error
	}

	ImageTransformer interface {
		Probe(path string) (dto.AssetMeta, error)
		Transform(ctx context.Context, inputPath, outputPath string, opts dto.ImageOptions) error
	}

	VideoTransformer interface {
		Probe(ctx context.Context, path string) (dto.AssetMeta, error)
		Transform(ctx context.Context, inputPath, outputPath string, opts dto.VideoOptions) error
	}

	// PDFTransformer never fails: on any processing error the original
	// bytes come back unchanged.
	PDFTransformer interface {
		Transform(ctx context.Context, data []byte, opts dto.PDFOptions) []byte
	}
)
