package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autodoc-ai/autodoc/pkg/tracker"
)

func newStatsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show generation statistics by result source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			tr, err := tracker.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = tr.Close() }()

			summaries, err := tr.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No generation records yet.")
				return nil
			}

			fmt.Printf("%-10s %8s %14s %14s %12s\n", "SOURCE", "COUNT", "PROMPT TOK", "OUTPUT TOK", "AVG MS")
			for _, s := range summaries {
				fmt.Printf("%-10s %8d %14d %14d %12.0f\n",
					s.Source, s.Count, s.PromptTokens, s.OutputTokens, s.AvgLatencyMs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "autodoc.yaml", "path to config file")
	return cmd
}
