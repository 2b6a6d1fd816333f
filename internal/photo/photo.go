// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package photo downloads the source photo and stores it as WebP.
package photo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pdiddy/photo-fetch/internal/convert"
	"github.com/pdiddy/photo-fetch/internal/fetch"
	"github.com/pdiddy/photo-fetch/internal/log"
	"github.com/pdiddy/photo-fetch/pkg/types"
)

var printer = message.NewPrinter(language.English)

// Run downloads cfg.URL, validates the payload, stages it at cfg.TempPath,
// and converts it to WebP at cfg.OutputPath. Progress lines go to w.
//
// The staged file is removed on every path once it has been created. The
// output file is only touched after a successful decode, so a failed run
// never leaves a partial output behind.
func Run(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer) (*types.Photo, error) {
	fmt.Fprintf(w, "Downloading image from: %s\n", cfg.URL)

	start := time.Now()
	payload, err := fetch.Get(ctx, client, cfg.URL, cfg.UserAgent)
	if err != nil {
		return nil, newError(KindNetwork, "download", err)
	}
	log.Default.Debugw("download finished", "url", cfg.URL, "bytes", len(payload), "elapsed", time.Since(start))

	if err := fetch.Validate(payload, cfg.MinBytes); err != nil {
		return nil, newError(KindValidation, "validate", err)
	}

	if err := stage(cfg.TempPath, payload); err != nil {
		return nil, newError(KindProcessing, "stage", err)
	}
	defer removeStaged(cfg.TempPath)
	printer.Fprintf(w, "✓ Downloaded %d bytes\n", len(payload))

	p, err := Convert(cfg.TempPath, cfg.OutputPath, cfg.Quality, w)
	if err != nil {
		return nil, err
	}
	p.SourceURL = cfg.URL
	p.DownloadedBytes = len(payload)
	return p, nil
}

// Convert re-encodes the local image at srcPath as WebP at destPath. It is
// the second half of Run and also the manual recovery path when the
// download has to be done by hand.
func Convert(srcPath, destPath string, quality float32, w io.Writer) (*types.Photo, error) {
	fmt.Fprintln(w, "Converting to WebP format...")

	start := time.Now()
	bounds, size, err := convert.File(srcPath, destPath, quality)
	if err != nil {
		return nil, newError(KindProcessing, "convert", err)
	}
	log.Default.Debugw("conversion finished",
		"src", srcPath, "dest", destPath, "quality", quality,
		"width", bounds.Dx(), "height", bounds.Dy(), "elapsed", time.Since(start))

	fmt.Fprintf(w, "✓ Successfully created %s\n", destPath)
	printer.Fprintf(w, "  Output file size: %d bytes\n", size)

	return &types.Photo{
		OutputPath:  destPath,
		OutputBytes: size,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// stage writes payload to path, replacing any previous contents.
func stage(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func removeStaged(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Default.Warnw("could not remove staged download", "path", path, "error", err)
	}
}
