package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/harness"
)

// ValidationError is one problem found in a job file.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// JobValidation holds the validation result for one job file.
type JobValidation struct {
	Path   string            `json:"path"`
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool            `json:"valid"`
	Jobs  []JobValidation `json:"jobs"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <job>...",
		Short: "Validate jobs without running them",
		Long: `Check job files against the job schema and the semantic rules
(data prefixes, empty init data, unsupported lines, flip cycle widths)
without simulating anything.

Exit codes:
  0 - All jobs valid
  1 - One or more jobs invalid
  2 - Command error (unreadable file)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Valid: true, Jobs: make([]JobValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		problems, err := harness.CheckJobFile(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("cannot validate %s", path), err)
		}
		jv := JobValidation{Path: path, Valid: len(problems) == 0}
		for _, p := range problems {
			msg := p.Message
			if p.Err != nil {
				msg = fmt.Sprintf("%s: %v", msg, p.Err)
			}
			jv.Errors = append(jv.Errors, ValidationError{Field: p.Field, Message: msg})
		}
		if !jv.Valid {
			result.Valid = false
		}
		result.Jobs = append(result.Jobs, jv)
	}

	if opts.Format == "json" {
		var err error
		if result.Valid {
			err = formatter.Success(result)
		} else {
			err = formatter.Error(ErrCodeInvalidJob, "validation failed", result)
		}
		if err != nil {
			return err
		}
	} else {
		outputValidateText(cmd, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func outputValidateText(cmd *cobra.Command, result ValidationResult) {
	w := cmd.OutOrStdout()
	for _, jv := range result.Jobs {
		if jv.Valid {
			fmt.Fprintf(w, "✓ %s\n", jv.Path)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", jv.Path)
		for _, e := range jv.Errors {
			if e.Field != "" {
				fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
			} else {
				fmt.Fprintf(w, "  %s\n", e.Message)
			}
		}
	}
}
