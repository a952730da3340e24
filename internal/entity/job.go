package entity

import "github.com/google/uuid"

type AssetKind string

const (
	KindImage   AssetKind = "image"
	KindVideo   AssetKind = "video"
	KindPDF     AssetKind = "pdf"
	KindUnknown AssetKind = "unknown"
)

// CropRect is a crop rectangle in pixels, relative to the top-left corner.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TrimWindow is a video trim window in seconds.
type TrimWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type ResizeParams struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ImageProps struct {
	Crop     *CropRect `json:"cropParams,omitempty"`
	Compress bool      `json:"compress,omitempty"`
	// Resize is accepted and recorded but not applied by the executor.
	Resize *ResizeParams `json:"resizeParams,omitempty"`
}

type VideoProps struct {
	Crop     *CropRect   `json:"cropParams,omitempty"`
	Trim     *TrimWindow `json:"trimParams,omitempty"`
	Compress bool        `json:"compress,omitempty"`
}

type PDFProps struct {
	Compress bool `json:"compress,omitempty"`
}

// AssetConfig carries at most one variant; the classified asset kind
// selects which one applies.
type AssetConfig struct {
	Image *ImageProps `json:"imageProps,omitempty"`
	Video *VideoProps `json:"videoProps,omitempty"`
	PDF   *PDFProps   `json:"pdfProps,omitempty"`
}

// Job is immutable once dispatched.
type Job struct {
	RequestID    uuid.UUID   `json:"requestId"`
	Source       string      `json:"source"`
	OriginalURL  string      `json:"originalUrl"`
	OverwriteURL string      `json:"overwriteUrl"`
	AssetConfig  AssetConfig `json:"assetConfig"`
}
