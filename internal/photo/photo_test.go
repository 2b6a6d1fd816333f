// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package photo

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/photo-fetch/internal/convert/converttest"
	"github.com/pdiddy/photo-fetch/internal/fetch"
	"github.com/pdiddy/photo-fetch/internal/httputil"
	"github.com/pdiddy/photo-fetch/pkg/types"
)

// testConfig points every path into a fresh temp dir and the URL at url.
func testConfig(t *testing.T, url string) types.FetchConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := types.DefaultFetchConfig()
	cfg.URL = url
	cfg.Timeout = 5 * time.Second
	cfg.TempPath = filepath.Join(dir, "tmp", "photo-temp.jpg")
	cfg.OutputPath = filepath.Join(dir, "images", "photos", "photo.webp")
	return cfg
}

func serve(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist (stat err: %v)", path, err)
}

func TestRun_Success(t *testing.T) {
	payload := converttest.JPEG(t, 200, 150)
	require.Greater(t, len(payload), types.DefaultMinBytes)

	ts := serve(t, payload)
	cfg := testConfig(t, ts.URL)

	var out bytes.Buffer
	p, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &out)
	require.NoError(t, err)

	assert.Equal(t, ts.URL, p.SourceURL)
	assert.Equal(t, cfg.OutputPath, p.OutputPath)
	assert.Equal(t, len(payload), p.DownloadedBytes)
	assert.Equal(t, 200, p.Width)
	assert.Equal(t, 150, p.Height)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, int64(len(data)), p.OutputBytes)
	_, err = webp.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "output must be valid WebP")

	assertMissing(t, cfg.TempPath)

	log := out.String()
	assert.Contains(t, log, "Downloading image from: "+ts.URL)
	assert.Contains(t, log, "✓ Downloaded ")
	assert.Contains(t, log, "Converting to WebP format...")
	assert.Contains(t, log, "✓ Successfully created "+cfg.OutputPath)
	assert.Contains(t, log, "Output file size:")
}

func TestRun_ByteCountUsesThousandsSeparator(t *testing.T) {
	payload := converttest.JPEG(t, 256, 256)
	require.Greater(t, len(payload), 10000)

	cfg := testConfig(t, serve(t, payload).URL)
	var out bytes.Buffer
	_, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), printer.Sprintf("✓ Downloaded %d bytes", len(payload)))
	assert.Regexp(t, `Downloaded \d{1,3}(,\d{3})+ bytes`, out.String())
}

func TestRun_PayloadTooSmall(t *testing.T) {
	cfg := testConfig(t, serve(t, bytes.Repeat([]byte{0x42}, 500)).URL)

	var out bytes.Buffer
	p, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &out)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, fetch.ErrTooSmall)
	assert.Contains(t, err.Error(), "too small")

	assertMissing(t, cfg.OutputPath)
	assertMissing(t, cfg.TempPath)
}

func TestRun_NetworkFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (url string, timeout time.Duration)
	}{
		{
			name: "connection refused",
			setup: func(t *testing.T) (string, time.Duration) {
				ts := httptest.NewServer(http.NotFoundHandler())
				url := ts.URL
				ts.Close()
				return url, 5 * time.Second
			},
		},
		{
			name: "not found",
			setup: func(t *testing.T) (string, time.Duration) {
				ts := httptest.NewServer(http.NotFoundHandler())
				t.Cleanup(ts.Close)
				return ts.URL, 5 * time.Second
			},
		},
		{
			name: "timeout",
			setup: func(t *testing.T) (string, time.Duration) {
				release := make(chan struct{})
				ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					select {
					case <-release:
					case <-r.Context().Done():
					}
				}))
				t.Cleanup(ts.Close)
				t.Cleanup(func() { close(release) })
				return ts.URL, 50 * time.Millisecond
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, timeout := tt.setup(t)
			cfg := testConfig(t, url)
			cfg.Timeout = timeout

			_, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &bytes.Buffer{})
			require.Error(t, err)
			assert.Equal(t, KindNetwork, KindOf(err))
			assertMissing(t, cfg.OutputPath)
			assertMissing(t, cfg.TempPath)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := testConfig(t, serve(t, converttest.JPEG(t, 64, 64)).URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, httputil.NewClient(cfg.HTTPConfig), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_UndecodablePayload(t *testing.T) {
	cfg := testConfig(t, serve(t, bytes.Repeat([]byte("<html>nope</html>"), 100)).URL)

	var out bytes.Buffer
	_, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &out)
	require.Error(t, err)
	assert.Equal(t, KindProcessing, KindOf(err))

	assert.Contains(t, out.String(), "✓ Downloaded ")
	assertMissing(t, cfg.OutputPath)
	assertMissing(t, cfg.TempPath)
}

func TestRun_OverwritesStaleTempAndOutput(t *testing.T) {
	cfg := testConfig(t, serve(t, converttest.JPEG(t, 80, 60)).URL)
	for _, p := range []string{cfg.TempPath, cfg.OutputPath} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("stale"), 0o644))
	}

	_, err := Run(context.Background(), httputil.NewClient(cfg.HTTPConfig), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	_, err = webp.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assertMissing(t, cfg.TempPath)
}

func TestConvert_LocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "downloaded.png")
	require.NoError(t, os.WriteFile(src, converttest.PNG(t, 40, 30), 0o644))
	dest := filepath.Join(dir, "out", "photo.webp")

	var out bytes.Buffer
	p, err := Convert(src, dest, 85, &out)
	require.NoError(t, err)
	assert.Equal(t, dest, p.OutputPath)
	assert.Equal(t, 40, p.Width)
	assert.FileExists(t, src, "Convert leaves its input alone")
	assert.FileExists(t, dest)
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := Convert(filepath.Join(t.TempDir(), "nope.jpg"), filepath.Join(t.TempDir(), "o.webp"), 85, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, KindProcessing, KindOf(err))
}

func TestKindOf(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", base, KindUnknown},
		{"direct", newError(KindValidation, "validate", base), KindValidation},
		{"wrapped", errors.Join(errors.New("outer"), newError(KindNetwork, "download", base)), KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	err := newError(KindProcessing, "convert", errors.New("bad data"))
	assert.Equal(t, "convert: bad data", err.Error())
	assert.Equal(t, "processing", err.Kind.String())
	assert.Equal(t, "bad data", (&Error{Err: errors.New("bad data")}).Error())
}
