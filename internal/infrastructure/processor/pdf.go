package processor

import (
	"bytes"
	"context"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFExecutor compresses via a pdfcpu optimize pass. Strictly
// best-effort: any failure hands the original bytes back unchanged.
type PDFExecutor struct {
	logger logger.Interface
}

func NewPDF(l logger.Interface) *PDFExecutor {
	return &PDFExecutor{logger: l}
}

func (p *PDFExecutor) Transform(ctx context.Context, data []byte, opts dto.PDFOptions) []byte {
	if !opts.Compress {
		return data
	}

	var buf bytes.Buffer

	err := api.Optimize(bytes.NewReader(data), &buf, nil)
	if err != nil {
		p.logger.Warn("PDFExecutor - Transform - api.Optimize failed, keeping original bytes: %v", err)

		return data
	}

	return buf.Bytes()
}
