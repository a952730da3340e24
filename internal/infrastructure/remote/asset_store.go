// Package remote reads and writes assets over plain HTTP against
// pre-signed or otherwise directly accessible URLs.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andreyxaxa/Media-Processor/internal/entity"
	"github.com/gabriel-vasile/mimetype"
)

type AssetStore struct {
	probeClient *http.Client
	client      *http.Client
}

// New builds an asset store. Metadata probes (HEAD) get probeTimeout;
// downloads and uploads run unbounded, a transfer takes as long as it takes.
func New(probeTimeout time.Duration) *AssetStore {
	return &AssetStore{
		probeClient: &http.Client{Timeout: probeTimeout},
		client:      &http.Client{},
	}
}

// Classify maps the asset's declared content type to an asset kind.
// Any probe failure collapses to KindUnknown, never an error.
func (s *AssetStore) Classify(ctx context.Context, url string) entity.AssetKind {
	contentType, err := s.head(ctx, url)
	if err != nil {
		return entity.KindUnknown
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return entity.KindImage
	case strings.HasPrefix(contentType, "video/"):
		return entity.KindVideo
	case contentType == "application/pdf":
		return entity.KindPDF
	default:
		return entity.KindUnknown
	}
}

// Exists is optimistic-negative: uncertainty counts as gone.
func (s *AssetStore) Exists(ctx context.Context, url string) bool {
	_, err := s.head(ctx, url)

	return err == nil
}

func (s *AssetStore) head(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("AssetStore - head - http.NewRequestWithContext: %w", err)
	}

	resp, err := s.probeClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AssetStore - head - s.probeClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("AssetStore - head - unexpected status %d", resp.StatusCode)
	}

	contentType, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")

	return strings.TrimSpace(contentType), nil
}

func (s *AssetStore) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("AssetStore - Download - http.NewRequestWithContext: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("AssetStore - Download - s.client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AssetStore - Download - unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("AssetStore - Download - os.Create: %w", err)
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("AssetStore - Download - io.Copy: %w", err)
	}

	return nil
}

func (s *AssetStore) UploadFile(ctx context.Context, url, path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("AssetStore - UploadFile - mimetype.DetectFile: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("AssetStore - UploadFile - os.Open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("AssetStore - UploadFile - f.Stat: %w", err)
	}

	err = s.put(ctx, url, f, info.Size(), mtype.String())
	if err != nil {
		return fmt.Errorf("AssetStore - UploadFile: %w", err)
	}

	return nil
}

func (s *AssetStore) UploadBytes(ctx context.Context, url string, data []byte) error {
	mtype := mimetype.Detect(data)

	err := s.put(ctx, url, bytes.NewReader(data), int64(len(data)), mtype.String())
	if err != nil {
		return fmt.Errorf("AssetStore - UploadBytes: %w", err)
	}

	return nil
}

func (s *AssetStore) put(ctx context.Context, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("put - http.NewRequestWithContext: %w", err)
	}

	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put - s.client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("put - unexpected status %d", resp.StatusCode)
	}

	return nil
}
