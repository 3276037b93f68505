package main

import (
	"fmt"
	"strings"

	"notasmart/internal/config"
	"notasmart/internal/ledger"
	"notasmart/internal/report"
	"notasmart/internal/sheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	calcScale  string
	calcTarget float64
	calcGrades []string
	calcFile   string
	calcFormat string
)

// calcCmd computes a report without the interactive UI
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute averages for a list of grades",
	Long: `Builds a grade ledger from flags and/or a grade sheet and prints the
report. Every grade goes through the same validation as the interactive
calculator; the first rejected grade aborts with its message.

Examples:
  notasmart calc --grade 4:30 --grade 3,5:20
  notasmart calc --scale 0-10 --target 7 -f sheet.yaml --format json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcScale, "scale", "", "Grading scale (0-5, 0-10, 0-100)")
	calcCmd.Flags().Float64Var(&calcTarget, "target", 0, "Target average (default: the scale's passing grade)")
	calcCmd.Flags().StringArrayVarP(&calcGrades, "grade", "g", nil, "Grade as value:weight, repeatable")
	calcCmd.Flags().StringVarP(&calcFile, "file", "f", "", "Grade sheet YAML file")
	calcCmd.Flags().StringVar(&calcFormat, "format", "text", "Output format: text, markdown, json")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := calcSheet(cmd)
	if err != nil {
		return err
	}

	l, err := cfg.NewLedger(ledger.WithLogger(logger.Named("ledger")))
	if err != nil {
		return err
	}
	if err := sheet.Apply(s, l); err != nil {
		return err
	}
	logger.Debug("ledger built",
		zap.String("scale", l.Scale().Name),
		zap.Int("grades", l.Len()),
		zap.Float64("total_weight", l.TotalWeight()))

	out, err := formatReport(report.Build(l), calcFormat, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// calcSheet merges the sheet file with the command-line flags. Flags win for
// scale and target; --grade rows are appended after the file's rows.
func calcSheet(cmd *cobra.Command) (sheet.Sheet, error) {
	var s sheet.Sheet
	if calcFile != "" {
		loaded, err := sheet.Load(calcFile)
		if err != nil {
			return sheet.Sheet{}, err
		}
		s = loaded
	}
	if calcScale != "" {
		s.Scale = calcScale
	}
	if cmd.Flags().Changed("target") {
		t := calcTarget
		s.Target = &t
	}
	for _, g := range calcGrades {
		row, err := sheet.ParsePair(g)
		if err != nil {
			return sheet.Sheet{}, err
		}
		s.Grades = append(s.Grades, row)
	}
	return s, nil
}

func formatReport(s report.Summary, format string, cfg *config.Config) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := report.JSON(s)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "markdown", "md":
		return report.Markdown(s), nil
	case "text", "":
		style := ""
		if cfg.UI.Theme == "light" || cfg.UI.Theme == "dark" {
			style = cfg.UI.Theme
		}
		return report.Render(report.Markdown(s), report.Options{Width: cfg.UI.WordWrap, Style: style})
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, markdown, json)", format)
	}
}
