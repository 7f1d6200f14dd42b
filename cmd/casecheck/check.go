package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casecheck/internal/diag"
	"casecheck/internal/diagfmt"
	"casecheck/internal/driver"
	"casecheck/internal/project"
	"casecheck/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.case ...]",
	Short: "Validate @source attributes in case fixture files",
	Long:  `Run the data source checker over the given fixture files, or over the manifest's include list when no files are given`,
	RunE:  runCheck,

	SilenceUsage: true,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return err
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	manifest, hasManifest, err := project.FindAndLoad(".")
	if err != nil {
		return err
	}
	if hasManifest {
		cfg := manifest.Config.Checker
		if maxDiags == 0 {
			maxDiags = cfg.MaxDiagnostics
		}
		noWarnings = noWarnings || cfg.NoWarnings
		warningsAsErrors = warningsAsErrors || cfg.WarningsAsErrors
	}

	paths := args
	if len(paths) == 0 && hasManifest {
		paths = manifest.IncludePaths()
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fixture files: pass paths or add [project].include to %s", project.ManifestName)
	}

	fs := source.NewFileSet()
	result, err := driver.DiagnosePaths(cmd.Context(), fs, paths, driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiags,
	})
	if err != nil {
		return err
	}

	bag := result.Bag
	if hasManifest {
		bag = bag.Filter(func(d diag.Diagnostic) bool {
			return !manifest.Disabled(d.Code)
		})
	}
	if noWarnings {
		bag = bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning
		})
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:     colorEnabled(cmd, os.Stdout),
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (expected pretty or json)", format)
	}

	failed := bag.HasErrors() || (warningsAsErrors && bag.HasWarnings())
	if failed {
		return fmt.Errorf("diagnostics reported")
	}
	return nil
}
