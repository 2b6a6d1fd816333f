// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert decodes raster images and re-encodes them as lossy WebP.
package convert

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Decode opens path and decodes it with any registered codec (JPEG, PNG,
// GIF, BMP, TIFF, WebP). EXIF orientation is applied so phone photos come
// out upright.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return img, nil
}

// Encode writes img to w as lossy WebP at the given quality (0-100).
func Encode(w io.Writer, img image.Image, quality float32) error {
	if err := webp.Encode(w, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return fmt.Errorf("encoding to webp: %w", err)
	}
	return nil
}

// WriteFile encodes img to destPath, creating parent directories. The image
// is written to a temporary sibling and renamed into place so a failed
// encode never leaves a truncated file at destPath. It returns the size of
// the written file.
func WriteFile(img image.Image, destPath string, quality float32) (int64, error) {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".convert-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	encErr := Encode(tmpFile, img, quality)
	closeErr := tmpFile.Close()
	if encErr != nil {
		os.Remove(tmpPath)
		return 0, encErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", destPath, err)
	}
	return info.Size(), nil
}

// File converts the image at srcPath to WebP at destPath and returns the
// decoded image bounds alongside the output size.
func File(srcPath, destPath string, quality float32) (image.Rectangle, int64, error) {
	img, err := Decode(srcPath)
	if err != nil {
		return image.Rectangle{}, 0, err
	}
	n, err := WriteFile(img, destPath, quality)
	if err != nil {
		return image.Rectangle{}, 0, err
	}
	return img.Bounds(), n, nil
}
