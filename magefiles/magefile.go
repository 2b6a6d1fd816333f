//go:build mage

// Package main contains Mage build targets for fetch-photo developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

const (
	binDir    = "bin"
	binName   = "fetch-photo"
	cmdPkg    = "./cmd/fetch-photo"
	photosDir = "images/photos"
)

var binPath = filepath.Join(binDir, binName)

// Init creates the directory the converted photo is written to.
func Init() error {
	if err := os.MkdirAll(photosDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", photosDir, err)
	}
	fmt.Println("  ", photosDir)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}
