package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/filings-engine/internal/convert"
	"github.com/pdiddy/filings-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert filing HTML to plain text",
	Long: `Convert strips markup from downloaded filing documents and writes plain
text with table rows flattened onto single lines. Supports the built-in
html converter and a containerized pandoc backend.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("converter", "html", "conversion backend: html or pandoc")
	convertCmd.Flags().String("filings-dir", "filings", "base directory for filings")
	convertCmd.Flags().Bool("force", false, "reconvert documents whose text output already exists")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("converter")
	force, _ := cmd.Flags().GetBool("force")

	cfg := types.ConversionConfig{
		Backend:    types.ConversionBackend(backend),
		FilingsDir: stringOpt(cmd, "filings-dir", "filings_dir"),
		Force:      force,
	}

	c, err := convert.NewConverter(cfg)
	if err != nil {
		return err
	}

	result, err := convert.ConvertAll(c, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d filing(s) failed conversion", result.Failed)
	}
	return nil
}
