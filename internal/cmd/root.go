package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsawler/pagecap/internal/config"
	"github.com/tsawler/pagecap/internal/logging"
	"github.com/tsawler/pagecap/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rootCmd = &cobra.Command{
	Use:   "pagecap",
	Short: "Capture rectangular regions across page images",
	Long: `pagecap lays page images out top to bottom, as a document viewer
would, and composites the pixels under a selection into a single image.
A selection may span several pages; gaps and borders between pages are
filled with the background colour.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/pagecap/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json")
	rootCmd.PersistentFlags().String("log-file", "", "append JSON logs to this file instead of stderr")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PAGECAP")
	// e.g., PAGECAP_CAPTURE_RATIO for capture.ratio
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// setup loads the configuration and builds the logger for a command run.
// A log file, when configured, is closed once the command finishes.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Logging.File == "" {
		return cfg, logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format), nil
	}

	logger, file, err := logging.NewFile(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	cmd.PostRunE = func(*cobra.Command, []string) error {
		return file.Close()
	}
	return cfg, logger, nil
}

// printer formats numbers for humans.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// parseBox parses "x,y,w,h".
func parseBox(s string) (model.Box, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Box{}, fmt.Errorf("box %q: want x,y,w,h", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Box{}, fmt.Errorf("box %q: %w", s, err)
		}
		v[i] = f
	}
	return model.NewBox(v[0], v[1], v[2], v[3]), nil
}
