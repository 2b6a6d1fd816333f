// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package converttest provides image fixtures for tests.
package converttest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"
)

// Noise returns a w×h image filled with seeded random pixels. Noise does
// not compress well, which keeps encoded fixtures comfortably above the
// minimum payload size.
func Noise(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(int64(w*31 + h)))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 0xff,
			})
		}
	}
	return img
}

// JPEG returns a w×h noise image encoded as JPEG.
func JPEG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Noise(w, h), &jpeg.Options{Quality: 90}); err != nil {
		tb.Fatalf("encoding jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// PNG returns a w×h noise image encoded as PNG.
func PNG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Noise(w, h)); err != nil {
		tb.Fatalf("encoding png fixture: %v", err)
	}
	return buf.Bytes()
}
