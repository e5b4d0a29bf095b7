// Command rulecheck evaluates a building-geometry graph against a
// jurisdiction rule pack from the command line and prints the resulting
// compliance report.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	compliance "github.com/WSG23/optimal-build-sub007"
	"github.com/WSG23/optimal-build-sub007/geometry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rulecheck",
		Short:         "Building-code compliance checks over geometry models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvalCmd())
	return root
}

func newEvalCmd() *cobra.Command {
	var (
		graphPath string
		packPath  string
		jsonOut   bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a rule pack against a geometry graph",
		Long: `Evaluate loads a geometry graph (JSON) and a rule pack (JSON or
YAML, by file extension), runs every rule, and prints the report.
The exit code is 1 when violations are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			graph, err := loadGraph(graphPath)
			if err != nil {
				return err
			}
			pack, err := loadPack(packPath)
			if err != nil {
				return err
			}

			engine := compliance.NewEngine(compliance.WithLogger(logger))
			report, err := engine.Evaluate(pack, graph)
			if err != nil {
				return err
			}

			if jsonOut {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), report.String())
			}

			if n := report.Summary.Violations; n > 0 {
				return fmt.Errorf("%d violation(s) found", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "path to the geometry graph JSON file")
	cmd.Flags().StringVar(&packPath, "pack", "", "path to the rule pack (JSON or YAML)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the report as JSON instead of a table")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("pack")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func loadGraph(path string) (*geometry.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geometry.ParseGraph(data)
}

func loadPack(path string) (*compliance.RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return compliance.ParsePackYAML(data)
	}
	return compliance.ParsePack(data)
}
