package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/autodoc-ai/autodoc/pkg/prompt"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Work with prompt templates",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the built-in prompt templates as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(prompt.Default().Templates())
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
