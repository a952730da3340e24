// Package pipeline drives one queued job through
// classify -> validate -> transform -> verify -> upload -> cleanup.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/andreyxaxa/Media-Processor/internal/infrastructure"
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/types/errs"
)

type PipelineUseCase struct {
	store  infrastructure.AssetStore
	image  infrastructure.ImageTransformer
	video  infrastructure.VideoTransformer
	pdf    infrastructure.PDFTransformer
	jobLog usecase.JobLogUseCase

	tempDir string
	logger  logger.Interface
}

func New(
	store infrastructure.AssetStore,
	image infrastructure.ImageTransformer,
	video infrastructure.VideoTransformer,
	pdf infrastructure.PDFTransformer,
	jobLog usecase.JobLogUseCase,
	tempDir string,
	l logger.Interface,
) *PipelineUseCase {
	return &PipelineUseCase{
		store:   store,
		image:   image,
		video:   video,
		pdf:     pdf,
		jobLog:  jobLog,
		tempDir: tempDir,
		logger:  l,
	}
}

// Run processes one job to completion. A returned error means the job
// failed and must be dropped, not redelivered; nil covers both full
// success and the intentional upload skip when the original asset was
// deleted mid-flight.
func (uc *PipelineUseCase) Run(ctx context.Context, j entity.Job) (entity.AssetKind, error) {
	// 1. classify by the declared content type
	kind := uc.store.Classify(ctx, j.OriginalURL)

	rlog := uc.jobLog.Open(ctx, j)

	if kind == entity.KindUnknown {
		rlog.Append(ctx, entity.Error, "asset is unreachable or of unsupported type", nil)

		return kind, fmt.Errorf("PipelineUseCase - Run - classify %s: %w", j.OriginalURL, errs.ErrUnknownAssetKind)
	}

	rlog.Append(ctx, entity.Pending, fmt.Sprintf("%s job accepted by worker", kind), nil)

	// 2. download the original into the shared temp dir
	inputPath := uc.tempPath(j, "in", "")
	defer uc.removeTemp(inputPath)

	if err := uc.store.Download(ctx, j.OriginalURL, inputPath); err != nil {
		err = fmt.Errorf("PipelineUseCase - Run - uc.store.Download: %w", err)
		rlog.Append(ctx, entity.Failed, "failed to download original asset", err)

		return kind, err
	}

	rlog.Append(ctx, entity.Processing, "processing started", nil)

	// 3. validate + transform; the config variant is selected by the
	// classified kind, never by sniffing the options bag
	var (
		outputPath  string
		outputBytes []byte
		err         error
	)

	switch kind {
	case entity.KindImage:
		outputPath = uc.tempPath(j, "out", ".webp")
		defer uc.removeTemp(outputPath)
		err = uc.processImage(ctx, j.AssetConfig.Image, inputPath, outputPath, rlog)
	case entity.KindVideo:
		outputPath = uc.tempPath(j, "out", ".mp4")
		defer uc.removeTemp(outputPath)
		err = uc.processVideo(ctx, j.AssetConfig.Video, inputPath, outputPath, rlog)
	case entity.KindPDF:
		outputBytes, err = uc.processPDF(ctx, j.AssetConfig.PDF, inputPath, rlog)
	case entity.KindUnknown:
		// handled above
	}

	if err != nil {
		rlog.Append(ctx, entity.Failed, "processing failed", err)

		return kind, err
	}

	// 4. read the artifact back before touching the remote side
	if outputPath != "" {
		if _, statErr := os.Stat(outputPath); statErr != nil {
			err = fmt.Errorf("PipelineUseCase - Run - os.Stat: %w", statErr)
			rlog.Append(ctx, entity.Failed, "processed artifact missing", err)

			return kind, err
		}
	}

	// 5. the caller may have deleted the asset while we worked;
	// do not resurrect it with a write-back
	if !uc.store.Exists(ctx, j.OriginalURL) {
		rlog.Append(ctx, entity.Completed, "original asset no longer exists, skipping final upload", nil)

		return kind, nil
	}

	// 6. overwrite
	if outputPath != "" {
		err = uc.store.UploadFile(ctx, j.OverwriteURL, outputPath)
	} else {
		err = uc.store.UploadBytes(ctx, j.OverwriteURL, outputBytes)
	}
	if err != nil {
		err = fmt.Errorf("PipelineUseCase - Run - upload: %w", err)
		rlog.Append(ctx, entity.Failed, "failed to upload processed asset", err)

		return kind, err
	}

	rlog.Append(ctx, entity.Completed, "processing completed", nil)

	return kind, nil
}

func (uc *PipelineUseCase) processImage(
	ctx context.Context,
	props *entity.ImageProps,
	inputPath, outputPath string,
	rlog usecase.EventAppender,
) error {
	opts := dto.ImageOptions{}

	meta, err := uc.image.Probe(inputPath)
	if err != nil {
		rlog.Append(ctx, entity.Warning, "unable to probe image geometry, applying no transforms", err)
	} else {
		opts = validateImageOptions(ctx, meta, props, rlog)
	}

	if err := uc.image.Transform(ctx, inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("PipelineUseCase - processImage - uc.image.Transform: %w", err)
	}

	return nil
}

func (uc *PipelineUseCase) processVideo(
	ctx context.Context,
	props *entity.VideoProps,
	inputPath, outputPath string,
	rlog usecase.EventAppender,
) error {
	opts := dto.VideoOptions{}

	meta, err := uc.video.Probe(ctx, inputPath)
	if err != nil {
		rlog.Append(ctx, entity.Warning, "unable to probe video geometry, applying no transforms", err)
	} else {
		opts = validateVideoOptions(ctx, meta, props, rlog)
	}

	if err := uc.video.Transform(ctx, inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("PipelineUseCase - processVideo - uc.video.Transform: %w", err)
	}

	return nil
}

func (uc *PipelineUseCase) processPDF(
	ctx context.Context,
	props *entity.PDFProps,
	inputPath string,
	rlog usecase.EventAppender,
) ([]byte, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("PipelineUseCase - processPDF - os.ReadFile: %w", err)
	}

	opts := validatePDFOptions(ctx, int64(len(data)), props, rlog)

	return uc.pdf.Transform(ctx, data, opts), nil
}

// tempPath relies on timestamp + request id uniqueness, not locking.
func (uc *PipelineUseCase) tempPath(j entity.Job, stage, ext string) string {
	name := fmt.Sprintf("%d-%s-%s%s", time.Now().UnixNano(), j.RequestID, stage, ext)

	return filepath.Join(uc.tempDir, name)
}

func (uc *PipelineUseCase) removeTemp(path string) {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		uc.logger.Warn("failed to remove temp file %s: %v", path, err)
	}
}
