// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ocr-pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ocr-pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "ocr-pdf",
	Short: "Convert PDFs to Markdown, text, and searchable PDF",
	Long: `ocr-pdf converts a PDF document into Markdown, plain text, and (when the
engine supports it) a searchable PDF with an embedded OCR text layer.

All document understanding happens inside a conversion engine: the docling
container image, the MuPDF renderer, or a pure-Go text extractor. The CLI
handles page-range selection, engine configuration, and artifact writing.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ocr-pdf.yaml or ~/.config/ocr-pdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ocr-pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ocr-pdf"))
		}
	}

	viper.SetEnvPrefix("OCR_PDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
