package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ocr-pdf/internal/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Report which conversion engines are usable on this host",
	Long: `Backends checks each conversion engine against the host: whether a
container runtime with the docling image is present, and whether the
in-process engines are linked in. The auto backend picks the first
usable engine in the order listed.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range backend.All() {
			if a.Err != nil {
				fmt.Printf("%-8s unavailable (%v)\n", a.Name, a.Err)
				continue
			}
			fmt.Printf("%-8s available\n", a.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
