// pkg/cli/root.go
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/internal/logger"
)

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interruption signals
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		logger.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "datestamp",
		Short: "Stamp a human-readable date onto photos",
		Long:  `A tool that stamps a visible date/time onto batches of photos, taken from each photo's capture metadata when present and the current time otherwise.`,
	}

	// Global flags
	cfg := config.New()
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add commands
	rootCmd.AddCommand(newStampCommand(cfg))
	rootCmd.AddCommand(newStyleCommand(cfg))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Error executing command: %v", err)
		os.Exit(1)
	}
}
