// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Photo describes the outcome of a successful fetch-and-convert run.
type Photo struct {
	// SourceURL is the URL the payload was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// OutputPath is the local path of the WebP file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// DownloadedBytes is the size of the raw payload.
	DownloadedBytes int `json:"downloaded_bytes" yaml:"downloaded_bytes"`

	// OutputBytes is the size of the written WebP file.
	OutputBytes int64 `json:"output_bytes" yaml:"output_bytes"`

	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}
