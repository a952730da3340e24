package pipeline

import (
	"context"
	"testing"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
)

type recordedEvent struct {
	status  entity.Status
	message string
	err     error
}

type eventRecorder struct {
	events []recordedEvent
}

func (r *eventRecorder) Append(_ context.Context, status entity.Status, message string, errDetail error) {
	r.events = append(r.events, recordedEvent{status: status, message: message, err: errDetail})
}

func (r *eventRecorder) countStatus(s entity.Status) int {
	n := 0
	for _, e := range r.events {
		if e.status == s {
			n++
		}
	}

	return n
}

func TestValidateImageOptions(t *testing.T) {
	meta := dto.AssetMeta{Width: 1920, Height: 1080, Size: 600 << 10}

	tests := []struct {
		name         string
		meta         dto.AssetMeta
		props        *entity.ImageProps
		wantCrop     *entity.CropRect
		wantCompress bool
		wantWarnings int
	}{
		{
			name:  "nil props",
			meta:  meta,
			props: nil,
		},
		{
			name:     "valid crop kept",
			meta:     meta,
			props:    &entity.ImageProps{Crop: &entity.CropRect{X: 10, Y: 20, Width: 100, Height: 200}},
			wantCrop: &entity.CropRect{X: 10, Y: 20, Width: 100, Height: 200},
		},
		{
			name:     "crop touching the right edge is valid",
			meta:     meta,
			props:    &entity.ImageProps{Crop: &entity.CropRect{X: 1820, Y: 0, Width: 100, Height: 1080}},
			wantCrop: &entity.CropRect{X: 1820, Y: 0, Width: 100, Height: 1080},
		},
		{
			name:         "crop past the frame falls back to full frame",
			meta:         meta,
			props:        &entity.ImageProps{Crop: &entity.CropRect{X: 1900, Y: 0, Width: 100, Height: 100}},
			wantCrop:     &entity.CropRect{X: 0, Y: 0, Width: 1920, Height: 1080},
			wantWarnings: 1,
		},
		{
			name:         "negative origin falls back to full frame",
			meta:         meta,
			props:        &entity.ImageProps{Crop: &entity.CropRect{X: -1, Y: 0, Width: 10, Height: 10}},
			wantCrop:     &entity.CropRect{X: 0, Y: 0, Width: 1920, Height: 1080},
			wantWarnings: 1,
		},
		{
			name:         "compress above floor",
			meta:         dto.AssetMeta{Width: 10, Height: 10, Size: (500 << 10) + 1},
			props:        &entity.ImageProps{Compress: true},
			wantCompress: true,
		},
		{
			name:  "compress exactly at floor is skipped",
			meta:  dto.AssetMeta{Width: 10, Height: 10, Size: 500 << 10},
			props: &entity.ImageProps{Compress: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &eventRecorder{}

			got := validateImageOptions(context.Background(), tt.meta, tt.props, rec)

			if got.Compress != tt.wantCompress {
				t.Errorf("Compress = %v, want %v", got.Compress, tt.wantCompress)
			}
			if (got.Crop == nil) != (tt.wantCrop == nil) {
				t.Fatalf("Crop = %v, want %v", got.Crop, tt.wantCrop)
			}
			if got.Crop != nil && *got.Crop != *tt.wantCrop {
				t.Errorf("Crop = %+v, want %+v", *got.Crop, *tt.wantCrop)
			}
			if n := rec.countStatus(entity.Warning); n != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d", n, tt.wantWarnings)
			}
		})
	}
}

func TestValidateVideoOptions(t *testing.T) {
	meta := dto.AssetMeta{Width: 1280, Height: 720, Duration: 60, Size: 2 << 20}

	tests := []struct {
		name         string
		props        *entity.VideoProps
		wantCrop     bool
		wantTrim     bool
		wantWarnings int
	}{
		{
			name:     "valid crop and trim kept",
			props:    &entity.VideoProps{Crop: &entity.CropRect{X: 0, Y: 0, Width: 640, Height: 360}, Trim: &entity.TrimWindow{Start: 5, End: 15}},
			wantCrop: true,
			wantTrim: true,
		},
		{
			name:         "oversize crop is omitted, not substituted",
			props:        &entity.VideoProps{Crop: &entity.CropRect{X: 0, Y: 0, Width: 1281, Height: 720}},
			wantWarnings: 1,
		},
		{
			name:         "trim past the end is omitted",
			props:        &entity.VideoProps{Trim: &entity.TrimWindow{Start: 0, End: 61}},
			wantWarnings: 1,
		},
		{
			name:         "empty trim window is omitted",
			props:        &entity.VideoProps{Trim: &entity.TrimWindow{Start: 10, End: 10}},
			wantWarnings: 1,
		},
		{
			name:     "trim covering the whole duration is valid",
			props:    &entity.VideoProps{Trim: &entity.TrimWindow{Start: 0, End: 60}},
			wantTrim: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &eventRecorder{}

			got := validateVideoOptions(context.Background(), meta, tt.props, rec)

			if (got.Crop != nil) != tt.wantCrop {
				t.Errorf("Crop = %v, want crop %v", got.Crop, tt.wantCrop)
			}
			if (got.Trim != nil) != tt.wantTrim {
				t.Errorf("Trim = %v, want trim %v", got.Trim, tt.wantTrim)
			}
			if n := rec.countStatus(entity.Warning); n != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d", n, tt.wantWarnings)
			}
		})
	}
}

func TestValidateVideoOptionsCompressFloor(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want bool
	}{
		{"above floor", (1536 << 10) + 1, true},
		{"exactly at floor", 1536 << 10, false},
		{"below floor", 1 << 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &eventRecorder{}
			meta := dto.AssetMeta{Width: 100, Height: 100, Duration: 10, Size: tt.size}

			got := validateVideoOptions(context.Background(), meta, &entity.VideoProps{Compress: true}, rec)

			if got.Compress != tt.want {
				t.Errorf("Compress = %v, want %v", got.Compress, tt.want)
			}
		})
	}
}

func TestValidatePDFOptions(t *testing.T) {
	tests := []struct {
		name  string
		size  int64
		props *entity.PDFProps
		want  bool
	}{
		{"nil props", 1 << 20, nil, false},
		{"compress above floor", (50 << 10) + 1, &entity.PDFProps{Compress: true}, true},
		{"compress exactly at floor is skipped", 50 << 10, &entity.PDFProps{Compress: true}, false},
		{"no compress requested", 1 << 20, &entity.PDFProps{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &eventRecorder{}

			got := validatePDFOptions(context.Background(), tt.size, tt.props, rec)

			if got.Compress != tt.want {
				t.Errorf("Compress = %v, want %v", got.Compress, tt.want)
			}
		})
	}
}

func TestCropFits(t *testing.T) {
	tests := []struct {
		name string
		crop entity.CropRect
		want bool
	}{
		{"inside", entity.CropRect{X: 1, Y: 1, Width: 10, Height: 10}, true},
		{"exact frame", entity.CropRect{X: 0, Y: 0, Width: 100, Height: 50}, true},
		{"negative x", entity.CropRect{X: -1, Y: 0, Width: 10, Height: 10}, false},
		{"negative y", entity.CropRect{X: 0, Y: -1, Width: 10, Height: 10}, false},
		{"overflows width", entity.CropRect{X: 91, Y: 0, Width: 10, Height: 10}, false},
		{"overflows height", entity.CropRect{X: 0, Y: 41, Width: 10, Height: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cropFits(tt.crop, 100, 50); got != tt.want {
				t.Errorf("cropFits(%+v) = %v, want %v", tt.crop, got, tt.want)
			}
		})
	}
}
