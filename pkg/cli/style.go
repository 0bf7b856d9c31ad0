package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/internal/logger"
	"github.com/bstardust/datestamp/internal/prefs"
)

func newStyleCommand(cfg *config.Config) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "style",
		Short: "Show or reset the saved stamp style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetLevel(cfg.LogLevel)
			store := prefs.New("")

			if reset {
				if err := store.Save(config.DefaultStyle()); err != nil {
					return fmt.Errorf("failed to reset style preferences: %w", err)
				}
				logger.Info("Style preferences reset to defaults")
			}

			data, err := json.MarshalIndent(store.Load(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Restore the default style")

	return cmd
}
