package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quanty-ai/quanty/internal/calculator"
	"github.com/quanty-ai/quanty/internal/config"
	"github.com/quanty-ai/quanty/internal/dictionary"
	"github.com/quanty-ai/quanty/internal/nlp"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Print the language analysis of a message as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis := nlp.New().Process(strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		},
	}
}

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <problem>",
		Short: "Run a science calculator or the linear equation solver",
		Example: `  quanty calc geometry: circle radius=5
  quanty calc physics: force mass=10 acceleration=9.8
  quanty calc solve: 2x+3y=6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := calculator.Calculate(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newDefineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "define <word>",
		Short: "Look a word up in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// only the dictionary section is needed, so no API key is required
			var cfg config.DictionaryConfig
			if err := envconfig.Process("", &cfg); err != nil {
				return err
			}
			if opts.cfgFile != "" {
				v := viper.New()
				v.SetConfigFile(opts.cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file %s: %w", opts.cfgFile, err)
				}
				if v.IsSet("dictionary.endpoint") {
					cfg.Endpoint = v.GetString("dictionary.endpoint")
				}
			}

			entry, err := dictionary.NewClient(cfg).Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), dictionary.Format(entry))
			return nil
		},
	}
}
