//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Photo groups the targets that produce images/photos/grandma-mary.webp.
type Photo mg.Namespace

// Fetch downloads the photo and converts it to WebP.
func (Photo) Fetch() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath)
}

// Convert converts a manually downloaded photo to WebP.
func (Photo) Convert(path string) error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "convert", path)
}

// Clean removes the generated WebP file.
func (Photo) Clean() error {
	return sh.Rm(photosDir + "/grandma-mary.webp")
}
