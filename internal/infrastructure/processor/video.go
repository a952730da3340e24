package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/andreyxaxa/Media-Processor/internal/dto"
)

const (
	// Every output is downscaled to this width, aspect ratio preserved.
	targetVideoWidth = 1280

	crfDefault    = 23
	crfCompressed = 28
)

type VideoExecutor struct {
	ffmpegPath  string
	ffprobePath string
}

func NewVideo() *VideoExecutor {
	return &VideoExecutor{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
	}
}

type ffprobeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (p *VideoExecutor) Probe(ctx context.Context, path string) (dto.AssetMeta, error) {
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("VideoExecutor - Probe - cmd.Output: %w", err)
	}

	var probed ffprobeOutput
	err = json.Unmarshal(out, &probed)
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("VideoExecutor - Probe - json.Unmarshal: %w", err)
	}

	if len(probed.Streams) == 0 {
		return dto.AssetMeta{}, fmt.Errorf("VideoExecutor - Probe - no video streams in %s", path)
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("VideoExecutor - Probe - strconv.ParseFloat: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return dto.AssetMeta{}, fmt.Errorf("VideoExecutor - Probe - os.Stat: %w", err)
	}

	return dto.AssetMeta{
		Width:    probed.Streams[0].Width,
		Height:   probed.Streams[0].Height,
		Duration: duration,
		Size:     info.Size(),
	}, nil
}

func (p *VideoExecutor) Transform(ctx context.Context, inputPath, outputPath string, opts dto.VideoOptions) error {
	args := buildTransformArgs(inputPath, outputPath, opts)

	cmd := exec.CommandContext(ctx, p.ffmpegPath, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("VideoExecutor - Transform - cmd.CombinedOutput: %w: %s", err, tail(out))
	}

	return nil
}

// buildTransformArgs is kept pure so arg construction stays testable.
func buildTransformArgs(inputPath, outputPath string, opts dto.VideoOptions) []string {
	args := []string{"-y", "-i", inputPath}

	if opts.Trim != nil {
		args = append(args,
			"-ss", strconv.FormatFloat(opts.Trim.Start, 'f', -1, 64),
			"-to", strconv.FormatFloat(opts.Trim.End, 'f', -1, 64),
		)
	}

	var filters []string
	if opts.Crop != nil {
		filters = append(filters, fmt.Sprintf("crop=%d:%d:%d:%d",
			opts.Crop.Width, opts.Crop.Height, opts.Crop.X, opts.Crop.Y))
	}
	filters = append(filters, fmt.Sprintf("scale=%d:-2", targetVideoWidth))

	args = append(args, "-vf", strings.Join(filters, ","))

	crf := crfDefault
	if opts.Compress {
		crf = crfCompressed
	}

	args = append(args,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(crf),
		"-preset", "medium",
		"-c:a", "copy",
		outputPath,
	)

	return args
}

func tail(out []byte) string {
	const max = 512

	s := strings.TrimSpace(string(out))
	if len(s) <= max {
		return s
	}

	return s[len(s)-max:]
}
