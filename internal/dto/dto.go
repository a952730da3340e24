package dto

import "github.com/andreyxaxa/Media-Processor/internal/entity"

// IntakeRequest is the raw intake payload before a request id is assigned.
type IntakeRequest struct {
	Source       string             `json:"source"`
	OriginalURL  string             `json:"originalUrl"`
	OverwriteURL string             `json:"overwriteUrl"`
	AssetConfig  entity.AssetConfig `json:"assetConfig"`
}

// ImageOptions are validated executor inputs. Crop is nil when no crop
// applies; an invalid requested crop is substituted with the full frame.
type ImageOptions struct {
	Crop     *entity.CropRect
	Compress bool
}

// VideoOptions are validated executor inputs. An invalid crop or trim is
// omitted entirely.
type VideoOptions struct {
	Crop     *entity.CropRect
	Trim     *entity.TrimWindow
	Compress bool
}

type PDFOptions struct {
	Compress bool
}

// AssetMeta is the probed geometry of a downloaded asset. Duration is
// zero for still images.
type AssetMeta struct {
	Width    int
	Height   int
	Duration float64
	Size     int64
}
