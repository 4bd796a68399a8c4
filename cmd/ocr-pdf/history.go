package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ocr-pdf/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion runs",
	Long: `History lists recent conversion runs from the SQLite log kept next to
the output artifacts, newest first. Use --format yaml for a machine-
readable dump.`,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.String("out-dir", "output", "output directory holding the history log")
	f.Int("limit", 20, "maximum number of runs to list")
	f.String("format", "table", "output format: table or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outDir, _ := flags.GetString("out-dir")
	limit, _ := flags.GetInt("limit")
	format, _ := flags.GetString("format")

	if !flags.Changed("out-dir") {
		if v := viper.GetString("conversion.out_dir"); v != "" {
			outDir = v
		}
	}
	if !flags.Changed("limit") {
		if v := viper.GetInt("history.max_results"); v > 0 {
			limit = v
		}
	}

	store, err := history.Open(historyDir(outDir))
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml":
		return store.ExportYAML(cmd.Context(), os.Stdout, limit)
	case "table":
		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No conversion runs recorded.")
			return nil
		}
		fmt.Printf("%-4s %-20s %-8s %-6s %-8s %-4s %s\n", "ID", "WHEN", "ENGINE", "PAGES", "LANG", "PDF", "INPUT")
		for _, r := range runs {
			pdf := "no"
			if r.Artifacts.PDFAvailable {
				pdf = "yes"
			}
			fmt.Printf("%-4d %-20s %-8s %-6s %-8s %-4s %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Backend, r.Pages, r.Lang, pdf, r.Input)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or yaml)", format)
	}
}
