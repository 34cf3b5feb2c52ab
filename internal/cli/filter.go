package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallylists/tally/internal/engine"
)

type filterOptions struct {
	RatingAbove   float64
	RatingBelow   float64
	RatingBetween string
	Unrated       bool
	After         string
	Before        string
	By            []string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter <list.cue> <entries.yaml>",
		Short: "Filter entries by rating and date",
		Long: `Filter entries by rating and creation date. All given conditions must
hold for an entry to pass. Rating conditions skip unrated entries
unless --unrated asks for them explicitly. Combine with --by to sort
the retained entries.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.RatingAbove, "rating-above", 0, "keep entries rated above this value")
	cmd.Flags().Float64Var(&opts.RatingBelow, "rating-below", 0, "keep entries rated below this value")
	cmd.Flags().StringVar(&opts.RatingBetween, "rating-between", "", "keep entries rated within MIN,MAX inclusive")
	cmd.Flags().BoolVar(&opts.Unrated, "unrated", false, "keep only unrated entries")
	cmd.Flags().StringVar(&opts.After, "after", "", "keep entries created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Before, "before", "", "keep entries created up to the end of this date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&opts.By, "by", nil, "sort key for retained entries, repeatable (date|rating|name, optionally :asc or :desc)")

	return cmd
}

func runFilter(rootOpts *RootOptions, opts *filterOptions, listPath, entriesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	badFlags := func(err error) error {
		if ferr := formatter.Error(ErrCodeBadFlags, err.Error(), nil); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitCommandError, Message: "invalid flags", Err: err}
	}

	active, err := parseFilterFlags(opts, cmd)
	if err != nil {
		return badFlags(err)
	}

	sortActive, err := parseSortFlags(opts.By)
	if err != nil {
		return badFlags(err)
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

	result := engine.Filter(engine.Sort(entries, sortActive), active)
	formatter.VerboseLog("%d of %d entries retained", len(result), len(entries))

	rows := toRows(result)
	if formatter.Format == "json" {
		return formatter.JSON(rows)
	}
	writeRows(formatter.Writer, rows)
	return nil
}

// parseFilterFlags turns the rating and date flags into active filter
// criteria. The rating flags are mutually exclusive: each picks one
// evaluation mode for the single rating filter.
func parseFilterFlags(opts *filterOptions, cmd *cobra.Command) ([]engine.FilterCriterion, error) {
	var active []engine.FilterCriterion

	ratingModes := 0
	rating := engine.FilterCriterion{ID: "filter-rating", Type: engine.FilterRating, Label: "Rating", Icon: "star"}

	if cmd.Flags().Changed("rating-above") {
		ratingModes++
		rating.RatingMode = engine.RatingAbove
		rating.RatingRange = &engine.RatingRange{Min: opts.RatingAbove}
	}
	if cmd.Flags().Changed("rating-below") {
		ratingModes++
		rating.RatingMode = engine.RatingBelow
		rating.RatingRange = &engine.RatingRange{Max: opts.RatingBelow}
	}
	if opts.RatingBetween != "" {
		ratingModes++
		min, max, err := parseRatingPair(opts.RatingBetween)
		if err != nil {
			return nil, err
		}
		rating.RatingMode = engine.RatingBetween
		rating.RatingRange = &engine.RatingRange{Min: min, Max: max}
	}
	if opts.Unrated {
		ratingModes++
		rating.RatingMode = engine.RatingUnrated
	}
	if ratingModes > 1 {
		return nil, fmt.Errorf("--rating-above, --rating-below, --rating-between, and --unrated are mutually exclusive")
	}
	if ratingModes == 1 {
		active = append(active, rating)
	}

	if opts.After != "" || opts.Before != "" {
		rng := &engine.DateRange{}
		if opts.After != "" {
			t, err := parseDay("after", opts.After)
			if err != nil {
				return nil, err
			}
			rng.From = &t
		}
		if opts.Before != "" {
			t, err := parseDay("before", opts.Before)
			if err != nil {
				return nil, err
			}
			rng.To = &t
		}
		active = append(active, engine.FilterCriterion{
			ID:        "filter-date",
			Type:      engine.FilterDate,
			Label:     "Date Range",
			Icon:      "calendar",
			DateRange: rng,
		})
	}

	return active, nil
}

func parseRatingPair(s string) (min, max float64, err error) {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --rating-between %q: want MIN,MAX", s)
	}
	if min, err = strconv.ParseFloat(strings.TrimSpace(lo), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid --rating-between minimum %q", lo)
	}
	if max, err = strconv.ParseFloat(strings.TrimSpace(hi), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid --rating-between maximum %q", hi)
	}
	if max < min {
		return 0, 0, fmt.Errorf("invalid --rating-between %q: maximum below minimum", s)
	}
	return min, max, nil
}

func parseDay(flag, s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", flag, s)
	}
	return t, nil
}
