package main

import (
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pldgen-go/pkg/pldgen"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/rules"
	"gitlab.com/tozd/go/errors"
)

type cliOptions struct {
	request      pldgen.Request
	outputDir    string
	registryPath string
	logLevel     string
	noColor      bool
}

// addFlags registers the flags. Every flag falls back to a PLDGEN_* environment variable.
func (o *cliOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.request.POID, "poid", getEnv("PLDGEN_POID", ""), "PO identifier")
	f.StringVar(&o.request.ID, "id", getEnv("PLDGEN_ID", ""), "numeric ID used in the output file name")
	f.StringVar(&o.request.POName, "po-name", getEnv("PLDGEN_PO_NAME", ""), "PO display name")
	f.StringVar(&o.request.MasterKeyword, "master-keyword", getEnv("PLDGEN_MASTER_KEYWORD", ""), "master keyword")
	f.StringVarP(&o.outputDir, "output-dir", "o", getEnv("PLDGEN_OUTPUT_DIR", "."), "directory for the generated workbook")
	f.StringVar(&o.registryPath, "registry", getEnv("PLDGEN_REGISTRY", ""), "sheet registry YAML (default: built-in)")
	f.StringVar(&o.logLevel, "log-level", getEnv("PLDGEN_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	f.BoolVar(&o.noColor, "no-color", getEnvBool("PLDGEN_NO_COLOR", false), "disable colored output")
}

// setup applies the log level and color settings.
func (o *cliOptions) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return errors.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	logger := zerolog.Ctx(cmd.Context()).Level(level)
	cmd.SetContext(logger.WithContext(cmd.Context()))
	if o.noColor {
		color.NoColor = true
	}
	return nil
}

func (o *cliOptions) convertOptions() (pldgen.Options, error) {
	opts := pldgen.DefaultOptions()
	if o.registryPath != "" {
		reg, err := rules.Load(o.registryPath)
		if err != nil {
			return opts, err
		}
		opts.Registry = reg
	}
	return opts, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
