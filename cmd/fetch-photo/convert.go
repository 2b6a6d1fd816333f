// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/photo-fetch/internal/photo"
	"github.com/pdiddy/photo-fetch/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert a manually downloaded photo to WebP",
	Long: `Convert reads a local image (JPEG, PNG, GIF, BMP, TIFF, or WebP) and writes
it as WebP at the same quality and destination as the download run. Use it
when the attachment host cannot be reached from this machine.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := photo.Convert(args[0], cfg.OutputPath, types.DefaultQuality, out); err != nil {
		reportFailure(out, cfg, err)
		return err
	}
	return nil
}
