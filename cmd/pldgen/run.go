package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pldgen-go/pkg/pldgen"
	"gitlab.com/tozd/go/errors"
)

func run(cmd *cobra.Command, opts *cliOptions, inputPath string) error {
	out := cmd.OutOrStdout()

	if err := opts.request.Validate(); err != nil {
		printError(out, "Please fill in all required inputs and provide a rules workbook.")
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		printError(out, fmt.Sprintf("Cannot open %s: %v", inputPath, err))
		return errors.Errorf("opening input: %w", err)
	}
	defer input.Close()

	convertOpts, err := opts.convertOptions()
	if err != nil {
		printError(out, fmt.Sprintf("Cannot load registry: %v", err))
		return err
	}

	result, err := pldgen.Convert(cmd.Context(), opts.request, input, convertOpts)
	if err != nil {
		printError(out, fmt.Sprintf("Conversion failed: %v", err))
		return err
	}

	for _, sheetErr := range result.SheetErrors {
		printError(out, fmt.Sprintf("Error processing '%s': %v", sheetErr.Sheet, sheetErr.Err))
	}

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}
	outputPath := filepath.Join(opts.outputDir, result.Artifact.Name)
	if err := os.WriteFile(outputPath, result.Artifact.Data, 0644); err != nil {
		printError(out, fmt.Sprintf("Cannot write %s: %v", outputPath, err))
		return errors.Errorf("writing output: %w", err)
	}

	printSuccess(out, fmt.Sprintf("File '%s' generated successfully!", result.Artifact.Name))
	return nil
}

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
}
