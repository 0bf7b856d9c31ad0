package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bstardust/datestamp/internal/adapter/photosource"
	"github.com/bstardust/datestamp/internal/archive"
	"github.com/bstardust/datestamp/internal/compositor"
	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/internal/format"
	"github.com/bstardust/datestamp/internal/logger"
	"github.com/bstardust/datestamp/internal/orchestrator"
	"github.com/bstardust/datestamp/internal/prefs"
	"github.com/bstardust/datestamp/internal/progress"
	"github.com/bstardust/datestamp/internal/publisher"
	"github.com/bstardust/datestamp/internal/resolver"
	"github.com/bstardust/datestamp/pkg/models"
	"github.com/bstardust/datestamp/pkg/s3client"
)

func newStampCommand(cfg *config.Config) *cobra.Command {
	var datePreset, timePreset string

	cmd := &cobra.Command{
		Use:   "stamp [flags] <photo.jpg> | <folder> | <photos.zip> ...",
		Short: "Stamp dates onto a batch of photos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStamp(cmd, cfg, datePreset, timePreset, args)
		},
	}

	// Style flags; anything not passed falls back to saved preferences.
	cmd.Flags().Float64Var(&cfg.Style.FontSizePt, "font-size", cfg.Style.FontSizePt, "Font size in points (clamped at render time)")
	cmd.Flags().StringVar(&cfg.Style.FontFamily, "font", cfg.Style.FontFamily, "Path to a .ttf/.otf font file (default: embedded bold face)")
	cmd.Flags().StringVar(&cfg.Style.FontColor, "color", cfg.Style.FontColor, "Text fill color (#RRGGBB)")
	cmd.Flags().StringVar(&cfg.Style.StrokeColor, "stroke-color", cfg.Style.StrokeColor, "Text outline color (#RRGGBB)")
	cmd.Flags().Float64Var(&cfg.Style.StrokeWidthPx, "stroke-width", cfg.Style.StrokeWidthPx, "Text outline width in pixels (0 disables)")
	cmd.Flags().StringVar((*string)(&cfg.Style.Position), "position", string(cfg.Style.Position), "Stamp corner (top-left, top-right, bottom-left, bottom-right)")
	cmd.Flags().IntVar(&cfg.Style.OffsetX, "offset-x", cfg.Style.OffsetX, "Horizontal inset from the chosen corner, in pixels")
	cmd.Flags().IntVar(&cfg.Style.OffsetY, "offset-y", cfg.Style.OffsetY, "Vertical inset from the chosen corner, in pixels")
	cmd.Flags().BoolVar(&cfg.Style.ShadowEnabled, "shadow", cfg.Style.ShadowEnabled, "Cast a soft shadow from the text outline")
	cmd.Flags().Float64Var(&cfg.Style.ShadowBlurPx, "shadow-blur", cfg.Style.ShadowBlurPx, "Shadow blur radius in pixels")
	cmd.Flags().IntVar(&cfg.Style.ShadowOffsetX, "shadow-offset-x", cfg.Style.ShadowOffsetX, "Shadow horizontal offset in pixels")
	cmd.Flags().IntVar(&cfg.Style.ShadowOffsetY, "shadow-offset-y", cfg.Style.ShadowOffsetY, "Shadow vertical offset in pixels")
	cmd.Flags().StringVar(&cfg.Style.ShadowColor, "shadow-color", cfg.Style.ShadowColor, "Shadow color (#RRGGBB)")
	cmd.Flags().StringVar(&cfg.Style.DateFormat, "format", cfg.Style.DateFormat, "Date format string (YYYY, MMMM, MMM, MM, DD, HH, hh, mm, ss, A)")
	cmd.Flags().StringVar(&datePreset, "date-preset", "", "Named date layout (iso, us, eu, long, short, dots); combined with --time-preset")
	cmd.Flags().StringVar(&timePreset, "time-preset", "", "Named time layout (none, 24h, seconds, 12h)")

	// Output options
	cmd.Flags().StringVarP(&cfg.Output.Dir, "output", "o", cfg.Output.Dir, "Directory for stamped photos")
	cmd.Flags().StringVar(&cfg.Output.ZipPath, "zip", "", "Bundle stamped photos into a single zip instead of per-photo files")
	cmd.Flags().BoolVar(&cfg.Output.SaveStyle, "save-style", false, "Persist the effective style as the new preference")
	cmd.Flags().BoolVar(&cfg.Output.NoPrefs, "no-prefs", false, "Ignore saved style preferences for this run")

	// Optional S3 publish destination
	cmd.Flags().StringVar(&cfg.S3.Endpoint, "s3-endpoint", "", "S3 endpoint URL (enables publishing)")
	cmd.Flags().StringVar(&cfg.S3.Region, "s3-region", cfg.S3.Region, "S3 region")
	cmd.Flags().StringVar(&cfg.S3.Bucket, "s3-bucket", "", "S3 bucket name")
	cmd.Flags().StringVar(&cfg.S3.AccessKey, "s3-access-key", "", "S3 access key")
	cmd.Flags().StringVar(&cfg.S3.SecretKey, "s3-secret-key", "", "S3 secret key")
	cmd.Flags().BoolVar(&cfg.S3.UseSSL, "s3-use-ssl", true, "Use SSL for the S3 connection")
	cmd.Flags().StringVar(&cfg.S3.Prefix, "s3-prefix", "", "Prefix for S3 object keys")
	cmd.Flags().IntVar(&cfg.S3.Concurrency, "s3-concurrency", cfg.S3.Concurrency, "Number of concurrent uploads")

	return cmd
}

func runStamp(cmd *cobra.Command, cfg *config.Config, datePreset, timePreset string, args []string) error {
	logger.SetLevel(cfg.LogLevel)
	applyEnvOverrides(cmd, cfg)

	store := prefs.New("")
	if err := resolveStyle(cmd, cfg, store, datePreset, timePreset); err != nil {
		return err
	}

	ctx := cmd.Context()
	photos, err := photosource.Collect(ctx, args)
	if err != nil {
		return err
	}
	defer photos.Close()
	if len(photos.Entries) == 0 {
		return fmt.Errorf("no images to stamp")
	}

	comp, err := compositor.New(cfg.Style.FontFamily)
	if err != nil {
		return err
	}

	batch := orchestrator.New(resolver.New(), comp, cfg.Style, progress.New())
	defer batch.Clear()

	for _, entry := range photos.Entries {
		data, err := entry.Bytes()
		if err != nil {
			logger.Warn("Could not read %s: %v", entry.Name, err)
			data = nil // submit anyway; the item fails in place of aborting the batch
		}
		batch.Submit(entry.Name, data)
	}

	if err := batch.Process(ctx); err != nil {
		return err
	}

	if err := writeOutputs(cfg, batch); err != nil {
		return err
	}

	if cfg.S3.Endpoint != "" {
		if err := publish(ctx, cfg, batch); err != nil {
			// Items stay Done; the user can rerun the export.
			logger.Error("Publish failed: %v", err)
		}
	}

	printSummary(batch)

	if cfg.Output.SaveStyle {
		if err := store.Save(cfg.Style); err != nil {
			logger.Warn("Could not save style preferences: %v", err)
		}
	}

	return nil
}

// applyEnvOverrides lets DATESTAMP_* environment variables stand in for S3
// flags the user did not pass, so credentials stay out of shell history.
func applyEnvOverrides(cmd *cobra.Command, cfg *config.Config) {
	v := viper.New()
	v.SetEnvPrefix("DATESTAMP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		logger.Warn("Could not bind environment overrides: %v", err)
		return
	}

	cfg.S3.Endpoint = v.GetString("s3-endpoint")
	cfg.S3.Region = v.GetString("s3-region")
	cfg.S3.Bucket = v.GetString("s3-bucket")
	cfg.S3.AccessKey = v.GetString("s3-access-key")
	cfg.S3.SecretKey = v.GetString("s3-secret-key")
	cfg.S3.Prefix = v.GetString("s3-prefix")
}

// resolveStyle layers the run's style: defaults, then saved preferences,
// then any flag the user actually passed.
func resolveStyle(cmd *cobra.Command, cfg *config.Config, store *prefs.Store, datePreset, timePreset string) error {
	flagged := cfg.Style
	if !cfg.Output.NoPrefs {
		cfg.Style = store.Load()
	}

	overlay := map[string]func(){
		"font-size":       func() { cfg.Style.FontSizePt = flagged.FontSizePt },
		"font":            func() { cfg.Style.FontFamily = flagged.FontFamily },
		"color":           func() { cfg.Style.FontColor = flagged.FontColor },
		"stroke-color":    func() { cfg.Style.StrokeColor = flagged.StrokeColor },
		"stroke-width":    func() { cfg.Style.StrokeWidthPx = flagged.StrokeWidthPx },
		"position":        func() { cfg.Style.Position = flagged.Position },
		"offset-x":        func() { cfg.Style.OffsetX = flagged.OffsetX },
		"offset-y":        func() { cfg.Style.OffsetY = flagged.OffsetY },
		"shadow":          func() { cfg.Style.ShadowEnabled = flagged.ShadowEnabled },
		"shadow-blur":     func() { cfg.Style.ShadowBlurPx = flagged.ShadowBlurPx },
		"shadow-offset-x": func() { cfg.Style.ShadowOffsetX = flagged.ShadowOffsetX },
		"shadow-offset-y": func() { cfg.Style.ShadowOffsetY = flagged.ShadowOffsetY },
		"shadow-color":    func() { cfg.Style.ShadowColor = flagged.ShadowColor },
		"format":          func() { cfg.Style.DateFormat = flagged.DateFormat },
	}
	for name, apply := range overlay {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if !cfg.Style.Position.Valid() {
		return fmt.Errorf("unknown position %q", cfg.Style.Position)
	}

	// Presets build the format string unless --format was given explicitly.
	// The stored layout may already carry a time component; only its date
	// half survives recombination.
	if !cmd.Flags().Changed("format") && (datePreset != "" || timePreset != "") {
		dateLayout := format.DateOnly(cfg.Style.DateFormat)
		if datePreset != "" {
			layout, ok := format.DatePresets[datePreset]
			if !ok {
				return fmt.Errorf("unknown date preset %q", datePreset)
			}
			dateLayout = layout
		}
		timeLayout := ""
		if timePreset != "" {
			layout, ok := format.TimePresets[timePreset]
			if !ok {
				return fmt.Errorf("unknown time preset %q", timePreset)
			}
			timeLayout = layout
		}
		cfg.Style.DateFormat = format.Combine(dateLayout, timeLayout)
	}

	return nil
}

// writeOutputs writes the Done items: per-photo files by default, a single
// zip when requested. A one-photo batch skips archiving and emits the photo
// directly.
func writeOutputs(cfg *config.Config, batch *orchestrator.Batch) error {
	done := batch.DoneItems()
	if len(done) == 0 {
		return nil
	}

	if cfg.Output.ZipPath != "" && len(done) > 1 {
		entries := make([]archive.Entry, len(done))
		for i, item := range done {
			entries[i] = archive.Entry{Name: item.OutputName, Data: item.Output}
		}
		blob, err := archive.Pack(entries)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output.ZipPath, blob, 0644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		logger.Info("Wrote %d stamped photos to %s", len(done), cfg.Output.ZipPath)
		return nil
	}

	dir := cfg.Output.Dir
	if cfg.Output.ZipPath != "" {
		// Single photo: archiving is pointless, emit the file next to
		// where the zip would have gone.
		dir = filepath.Dir(cfg.Output.ZipPath)
		logger.Info("Only one stamped photo; skipping archive")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, item := range done {
		path := filepath.Join(dir, item.OutputName)
		if err := os.WriteFile(path, item.Output, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Debug("Wrote %s", path)
	}
	logger.Info("Wrote %d stamped photos to %s", len(done), dir)
	return nil
}

func publish(ctx context.Context, cfg *config.Config, batch *orchestrator.Batch) error {
	client, err := s3client.New(ctx, s3client.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
		Prefix:    cfg.S3.Prefix,
	})
	if err != nil {
		return err
	}

	return publisher.New(client, cfg.S3.Concurrency).Publish(ctx, batch.DoneItems())
}

func printSummary(batch *orchestrator.Batch) {
	for _, item := range batch.Snapshot() {
		switch item.State {
		case models.StateDone:
			note := ""
			if item.IsFallback {
				note = " (no capture metadata, used current time)"
			}
			logger.Info("  %s -> %s [%s]%s", item.SourceName, item.OutputName, item.DisplayTimestamp, note)
		case models.StateFailed:
			logger.Warn("  %s failed: %s", item.SourceName, item.Error)
		}
	}
}
