package processor

import (
	"reflect"
	"testing"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/internal/entity"
)

func TestBuildTransformArgs(t *testing.T) {
	tests := []struct {
		name string
		opts dto.VideoOptions
		want []string
	}{
		{
			name: "no options",
			opts: dto.VideoOptions{},
			want: []string{
				"-y", "-i", "in.mp4",
				"-vf", "scale=1280:-2",
				"-c:v", "libx264", "-crf", "23", "-preset", "medium", "-c:a", "copy",
				"out.mp4",
			},
		},
		{
			name: "trim",
			opts: dto.VideoOptions{Trim: &entity.TrimWindow{Start: 1.5, End: 10}},
			want: []string{
				"-y", "-i", "in.mp4",
				"-ss", "1.5", "-to", "10",
				"-vf", "scale=1280:-2",
				"-c:v", "libx264", "-crf", "23", "-preset", "medium", "-c:a", "copy",
				"out.mp4",
			},
		},
		{
			name: "crop before scale",
			opts: dto.VideoOptions{Crop: &entity.CropRect{X: 10, Y: 20, Width: 640, Height: 480}},
			want: []string{
				"-y", "-i", "in.mp4",
				"-vf", "crop=640:480:10:20,scale=1280:-2",
				"-c:v", "libx264", "-crf", "23", "-preset", "medium", "-c:a", "copy",
				"out.mp4",
			},
		},
		{
			name: "compress raises crf",
			opts: dto.VideoOptions{Compress: true},
			want: []string{
				"-y", "-i", "in.mp4",
				"-vf", "scale=1280:-2",
				"-c:v", "libx264", "-crf", "28", "-preset", "medium", "-c:a", "copy",
				"out.mp4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildTransformArgs("in.mp4", "out.mp4", tt.opts)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestTail(t *testing.T) {
	if got := tail([]byte("  short output \n")); got != "short output" {
		t.Errorf("tail = %q", got)
	}

	long := make([]byte, 2048)
	for i := range long {
		long[i] = 'x'
	}
	if got := tail(long); len(got) != 512 {
		t.Errorf("tail length = %d, want 512", len(got))
	}
}
