package main

import (
	"fmt"

	"notasmart/cmd/notasmart/ui"
	"notasmart/internal/ledger"

	"github.com/spf13/cobra"
)

// scalesCmd lists the supported grading scales
var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List the supported grading scales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table := ui.NewSimpleTable("Grading scales", []string{"Scale", "Min", "Max", "Passing", ""})
		for _, s := range ledger.SupportedScales() {
			marker := ""
			if s.Name == cfg.Grading.DefaultScale {
				marker = "default"
			}
			table.AddRow(s.Name, fmt.Sprintf("%g", s.Min), fmt.Sprintf("%g", s.Max), fmt.Sprintf("%g", s.Passing), marker)
		}
		fmt.Fprintln(cmd.OutOrStdout(), table.View(ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))))
		return nil
	},
}
