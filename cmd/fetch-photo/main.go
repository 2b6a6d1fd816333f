// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fetch-photo CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/photo-fetch/internal/httputil"
	"github.com/pdiddy/photo-fetch/internal/log"
	"github.com/pdiddy/photo-fetch/internal/photo"
	"github.com/pdiddy/photo-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// manualDownloadName is where the operator saves the photo when the
// download has to be done by hand.
const manualDownloadName = "grandma-mary-downloaded.jpg"

// rootCmd downloads the photo and converts it; it takes no arguments.
var rootCmd = &cobra.Command{
	Use:   "fetch-photo",
	Short: "Download Grandma Mary's photo and store it as WebP",
	Long: `fetch-photo downloads the photo attached to the family tree issue and
converts it to WebP (quality 85) at images/photos/grandma-mary.webp.

Run it from the repository root. If the download is blocked, save the image
by hand and use "fetch-photo convert".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(viper.GetString("log_level"))
	},
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fetch-photo.yaml or ~/.config/fetch-photo/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", log.LevelInfo, "diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("output", "", "WebP destination (default "+types.DefaultOutputPath+")")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_path", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fetch-photo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fetch-photo"))
		}
	}

	viper.SetEnvPrefix("FETCH_PHOTO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Default.Infow("using config file", "path", viper.ConfigFileUsed())
	}
}

// loadConfig overlays viper settings on the built-in defaults. Quality and
// the minimum payload size are fixed and cannot be overridden.
func loadConfig() (types.FetchConfig, error) {
	cfg := types.DefaultFetchConfig()
	if v := viper.GetString("url"); v != "" {
		cfg.URL = v
	}
	if viper.IsSet("timeout") {
		cfg.Timeout = viper.GetDuration("timeout")
	}
	if v := viper.GetString("user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if v := viper.GetString("temp_path"); v != "" {
		cfg.TempPath = v
	}
	if v := viper.GetString("output_path"); v != "" {
		cfg.OutputPath = v
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	return cfg, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	client := httputil.NewClient(cfg.HTTPConfig)
	p, err := photo.Run(cmd.Context(), client, cfg, out)
	if err != nil {
		reportFailure(out, cfg, err)
		return err
	}
	log.Default.Debugw("run complete", "output", p.OutputPath, "bytes", p.OutputBytes)
	return nil
}

// reportFailure prints the operator-facing diagnostic for err. Network
// failures also get the manual recovery procedure.
func reportFailure(w io.Writer, cfg types.FetchConfig, err error) {
	if photo.KindOf(err) != photo.KindNetwork {
		fmt.Fprintf(w, "✗ Error: %v\n", err)
		return
	}
	manual := filepath.Join(os.TempDir(), manualDownloadName)
	fmt.Fprintf(w, "✗ Network error: %v\n", err)
	fmt.Fprintln(w, "\nNote: If you're in a restricted network environment, you may need to:")
	fmt.Fprintf(w, "1. Download the image manually from %s\n", cfg.URL)
	fmt.Fprintf(w, "2. Save it as %s\n", manual)
	fmt.Fprintf(w, "3. Run: fetch-photo convert %s\n", manual)
}

// exitCode maps the command result to the process exit status.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil && photo.KindOf(err) == photo.KindUnknown {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}
