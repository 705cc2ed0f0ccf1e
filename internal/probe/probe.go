// Package probe extracts technical metadata from video files by shelling
// out to ffprobe. A probe failure excludes the file from grouping but is
// never fatal to a scan pass.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Nomadcxx/vidsweep/internal/logging"
	"github.com/Nomadcxx/vidsweep/internal/media"
	"github.com/Nomadcxx/vidsweep/internal/naming"
)

// ErrNoVideoStream is returned when ffprobe finds no video stream in a
// file. The file is skipped, not failed hard.
var ErrNoVideoStream = errors.New("no video stream found")

// Provider is the metadata extraction capability consumed by the
// duplicate engine.
type Provider interface {
	Probe(ctx context.Context, path string) (*media.Record, error)
}

// FFProbe extracts metadata with the ffprobe binary.
type FFProbe struct {
	binPath string
	timeout time.Duration
	log     *logging.Logger
}

// New creates an FFProbe provider. Empty binPath uses "ffprobe" from
// PATH; a zero timeout defaults to 30s per file.
func New(binPath string, timeout time.Duration, log *logging.Logger) *FFProbe {
	if binPath == "" {
		binPath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	return &FFProbe{binPath: binPath, timeout: timeout, log: log}
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	BitRate    string `json:"bit_rate"`
	Duration   string `json:"duration"`
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// Probe runs ffprobe on path and builds a metadata record, including the
// title classification of the filename. Unparseable fields default to
// zero/"unknown" rather than failing the whole file.
func (f *FFProbe) Probe(ctx context.Context, path string) (*media.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binPath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	record, err := parseOutput(out, path)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(path); err == nil {
		record.SizeBytes = info.Size()
	}

	f.log.Debug("probe", "extracted metadata",
		logging.F("path", path),
		logging.F("resolution", record.Resolution),
		logging.F("bitrate", record.Bitrate))
	return record, nil
}

// parseOutput builds a record from raw ffprobe JSON. Split out so tests
// can exercise it without the binary.
func parseOutput(out []byte, path string) (*media.Record, error) {
	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	var video *ffprobeStream
	for i := range probed.Streams {
		if probed.Streams[i].CodecType == "video" {
			video = &probed.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
	}

	filename := filepath.Base(path)
	classification := naming.Classify(filename)

	record := &media.Record{
		Path:        path,
		Filename:    filename,
		Width:       video.Width,
		Height:      video.Height,
		Resolution:  fmt.Sprintf("%dx%d", video.Width, video.Height),
		Codec:       orUnknown(video.CodecName),
		Container:   orUnknown(probed.Format.FormatName),
		FPS:         parseFrameRate(video.AvgFrameRate),
		ContentType: classification.Type,
		Title:       classification.Title,
		Season:      classification.Season,
		Episode:     classification.Episode,
		Category:    media.CategorizeHeight(video.Height),
	}

	if bps, err := strconv.ParseFloat(probed.Format.BitRate, 64); err == nil && bps > 0 {
		record.BitrateMbps = bps / 1e6
		record.Bitrate = fmt.Sprintf("%.2f Mbps", record.BitrateMbps)
	} else {
		record.Bitrate = "unknown"
	}

	if sec, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil && sec > 0 {
		record.DurationSec = sec
		record.Duration = fmt.Sprintf("%dm %ds", int(sec)/60, int(sec)%60)
	} else {
		record.Duration = "unknown"
	}

	return record, nil
}

// parseFrameRate converts ffprobe's "30000/1001" rational notation to a
// float, tolerating plain numbers and garbage alike.
func parseFrameRate(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
