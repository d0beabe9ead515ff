package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the category vocabulary as configuration",
		Long: `Print the category rules in effect as a "categories:" YAML block.

Paste the output into config.yaml and edit it to add phrases or categories;
a configured block replaces the built-in vocabulary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := config.LoadCategoryRules(viper.GetViper())
			if err != nil {
				return err
			}
			return writeRulesYAML(cmd.OutOrStdout(), defs)
		},
	}
}

func writeRulesYAML(w io.Writer, defs []pattern.CategoryRules) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"categories": defs}); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}
