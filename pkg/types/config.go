// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// SourceURL is the attachment holding the original photo.
	SourceURL = "https://github.com/user-attachments/assets/7eea5f77-f108-46b0-ab97-6deba7a66301"

	// DefaultUserAgent identifies the client to the attachment host, which
	// rejects requests without a browser-like agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	DefaultTimeout  = 30 * time.Second
	DefaultMinBytes = 1000
	DefaultQuality  = 85

	tempFileName = "grandma-mary-temp.jpg"
)

// DefaultOutputPath is where the converted photo lands, relative to the
// repository root.
var DefaultOutputPath = filepath.Join("images", "photos", "grandma-mary.webp")

// HTTPConfig holds shared HTTP settings used for the download.
type HTTPConfig struct {
	// Timeout bounds the whole request, redirects included.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with the request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for one fetch-and-convert run.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the remote image to download.
	URL string `json:"url" yaml:"url"`

	// TempPath receives the raw payload before decoding.
	TempPath string `json:"temp_path" yaml:"temp_path"`

	// OutputPath is the destination of the WebP file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// MinBytes is the smallest payload accepted as an image.
	MinBytes int `json:"min_bytes" yaml:"min_bytes"`

	// Quality is the lossy WebP quality, 0-100.
	Quality float32 `json:"quality" yaml:"quality"`
}

// DefaultFetchConfig returns the settings used when nothing is overridden.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		URL:        SourceURL,
		TempPath:   filepath.Join(os.TempDir(), tempFileName),
		OutputPath: DefaultOutputPath,
		MinBytes:   DefaultMinBytes,
		Quality:    DefaultQuality,
	}
}
