package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	reporterrors "canteen/internal/reports/errors"
)

const maxWatermarkBytes = 5 << 20

// Watermark is a decoded-and-checked image ready to be embedded.
type Watermark struct {
	Type   string // fpdf image type: PNG, JPG or GIF
	Data   []byte
	Width  int
	Height int
}

type WatermarkLoader interface {
	Load(ctx context.Context) (*Watermark, error)
}

// SourceLoader reads the watermark from a file path or an http(s) URL.
type SourceLoader struct {
	Source  string
	Timeout time.Duration
	Client  *http.Client
}

func NewSourceLoader(source string, timeout time.Duration) *SourceLoader {
	return &SourceLoader{
		Source:  strings.TrimSpace(source),
		Timeout: timeout,
		Client:  &http.Client{},
	}
}

// Load returns nil, nil when no source is configured.
func (l *SourceLoader) Load(ctx context.Context) (*Watermark, error) {
	if l.Source == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(l.Source, "http://") || strings.HasPrefix(l.Source, "https://") {
		data, err = l.fetch(ctx)
	} else {
		data, err = readFile(l.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reporterrors.ErrWatermarkUnavailable, err)
	}

	return DecodeWatermark(data)
}

func (l *SourceLoader) fetch(ctx context.Context) ([]byte, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return readLimited(resp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxWatermarkBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxWatermarkBytes {
		return nil, fmt.Errorf("image larger than %d bytes", maxWatermarkBytes)
	}
	return data, nil
}

var imageTypes = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

// DecodeWatermark checks that data is an image the PDF writer can embed.
func DecodeWatermark(data []byte) (*Watermark, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reporterrors.ErrWatermarkUnavailable, err)
	}

	imageType, ok := imageTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image format %q", reporterrors.ErrWatermarkUnavailable, format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: empty image", reporterrors.ErrWatermarkUnavailable)
	}

	return &Watermark{
		Type:   imageType,
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
