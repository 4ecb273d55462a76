package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quanty-ai/quanty/internal/config"
)

type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "quanty",
		Short: "Quanty AI assistant",
		Long: `Quanty is a conversational assistant that falls back across several
hosted models, remembers recent turns and answers from web search when every
model fails. It also ships offline calculators and a dictionary lookup.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file overlaid on environment settings")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "", "log format: text or json")
	_ = opts.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = opts.v.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(
		newServeCmd(opts),
		newChatCmd(opts),
		newAnalyzeCmd(),
		newCalcCmd(),
		newDefineCmd(opts),
	)
	return cmd
}

// load reads env, the optional YAML file and flags, in that order, and
// installs the configured logger.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.LoadFile(o.cfgFile)
	if err != nil {
		return nil, err
	}
	config.Overlay(cfg, o.v)
	setLogger(cfg.Log)
	return cfg, nil
}

func setLogger(cfg config.LogConfig) {
	slog.SetDefault(cfg.NewLogger(os.Stderr))
}
