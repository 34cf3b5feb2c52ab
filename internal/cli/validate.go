package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallylists/tally/internal/schema"
	"github.com/tallylists/tally/internal/validate"
)

type validateOptions struct {
	StarsMin  float64
	Precision string
}

var validPrecisions = []string{"any", "one-decimal", "integer"}

// entryReport is the per-entry validation outcome.
type entryReport struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Valid    bool               `json:"valid"`
	Failures []validate.Failure `json:"failures,omitempty"`
}

type validateResult struct {
	List    string        `json:"list"`
	Checked int           `json:"checked"`
	Invalid int           `json:"invalid"`
	Entries []entryReport `json:"entries"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <list.cue> <entries.yaml>",
		Short: "Validate entries against a list definition",
		Long: `Validate every entry in a fixture file against the compiled list
definition. Each entry reports all of its problems at once; the command
exits non-zero when any entry is invalid.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.StarsMin, "stars-min", schema.StarsMin, "lowest accepted star rating (0.5 or 1)")
	cmd.Flags().StringVar(&opts.Precision, "precision", "any", "rating precision for points/scale (any|one-decimal|integer)")

	return cmd
}

func runValidate(rootOpts *RootOptions, opts *validateOptions, listPath, entriesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	policy, err := buildPolicy(opts)
	if err != nil {
		if ferr := formatter.Error(ErrCodeBadFlags, err.Error(), nil); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitCommandError, Message: "invalid flags", Err: err}
	}

	list, err := loadList(formatter, listPath)
	if err != nil {
		return err
	}

	entries, err := loadEntries(entriesPath, list.ID)
	if err != nil {
		if ferr := formatter.Error(ErrCodeEntries, err.Error(), nil); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitCommandError, Message: "entries file is unusable", Err: err}
	}
	formatter.VerboseLog("loaded %d entries from %s", len(entries), entriesPath)

	result := validateResult{List: list.Name, Checked: len(entries)}
	for _, e := range entries {
		res, err := validate.Validate(list, validate.Candidate{Rating: e.Rating, FieldValues: e.FieldValues}, policy)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("entry %s", e.ID), Err: err}
		}
		report := entryReport{ID: e.ID, Name: e.Name(), Valid: res.Valid, Failures: res.Failures}
		if !res.Valid {
			result.Invalid++
		}
		result.Entries = append(result.Entries, report)
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else {
		writeValidateText(formatter, result)
	}

	if result.Invalid > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d of %d entries invalid", result.Invalid, result.Checked)}
	}
	return nil
}

func writeValidateText(f *OutputFormatter, result validateResult) {
	for _, r := range result.Entries {
		if r.Valid {
			fmt.Fprintf(f.Writer, "ok    %s (%s)\n", r.ID, r.Name)
			continue
		}
		fmt.Fprintf(f.Writer, "FAIL  %s (%s)\n", r.ID, r.Name)
		for _, fail := range r.Failures {
			fmt.Fprintf(f.Writer, "      %s: %s\n", fail.FieldID, fail.Reason)
		}
	}
	fmt.Fprintf(f.Writer, "%d checked, %d invalid\n", result.Checked, result.Invalid)
}

func buildPolicy(opts *validateOptions) (validate.Policy, error) {
	pol := validate.Policy{StarsMin: opts.StarsMin}

	if opts.StarsMin != 0.5 && opts.StarsMin != 1 {
		return pol, fmt.Errorf("invalid --stars-min %v: must be 0.5 or 1", opts.StarsMin)
	}

	switch opts.Precision {
	case "any":
		pol.RatingPrecision = validate.PrecisionAny
	case "one-decimal":
		pol.RatingPrecision = validate.PrecisionOneDecimal
	case "integer":
		pol.RatingPrecision = validate.PrecisionInteger
	default:
		return pol, fmt.Errorf("invalid --precision %q: must be one of %v", opts.Precision, validPrecisions)
	}

	return pol, nil
}
