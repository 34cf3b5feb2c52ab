package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallylists/tally/internal/engine"
)

type sortOptions struct {
	By []string
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sortOptions{}

	cmd := &cobra.Command{
		Use:   "sort <list.cue> <entries.yaml>",
		Short: "Sort entries by one or more keys",
		Long: `Sort entries by the given keys, in order. Later keys break ties left
by earlier ones, and entries equal on every key keep their stored
order. With no --by flags the default ordering applies: newest first.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.By, "by", nil, "sort key, repeatable (date|rating|name, optionally :asc or :desc)")

	return cmd
}

func runSort(rootOpts *RootOptions, opts *sortOptions, listPath, entriesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	active, err := parseSortFlags(opts.By)
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
	formatter.VerboseLog("sorting %d entries by %d criteria", len(entries), len(active))

	sorted := engine.Sort(entries, active)

	rows := toRows(sorted)
	if formatter.Format == "json" {
		return formatter.JSON(rows)
	}
	writeRows(formatter.Writer, rows)
	return nil
}

// parseSortFlags turns repeated --by values into active sort criteria.
// Each value is a key, optionally suffixed with :asc or :desc. Omitting
// the suffix uses the key's natural direction: newest first, highest
// first, A to Z. No flags at all means the default ordering.
func parseSortFlags(by []string) ([]engine.SortCriterion, error) {
	if len(by) == 0 {
		return engine.DefaultSortState().Active, nil
	}

	active := make([]engine.SortCriterion, 0, len(by))
	seen := make(map[engine.SortKey]bool, len(by))
	for _, spec := range by {
		keyPart, dirPart, hasDir := strings.Cut(spec, ":")

		var c engine.SortCriterion
		switch keyPart {
		case "date":
			c = engine.SortCriterion{ID: engine.SortIDDate, Key: engine.SortKeyDate, Direction: engine.Descending}
		case "rating":
			c = engine.SortCriterion{ID: engine.SortIDRating, Key: engine.SortKeyRating, Direction: engine.Descending}
		case "name":
			c = engine.SortCriterion{ID: engine.SortIDName, Key: engine.SortKeyName, Direction: engine.Ascending}
		default:
			return nil, fmt.Errorf("invalid --by key %q: must be date, rating, or name", keyPart)
		}

		if hasDir {
			switch dirPart {
			case "asc":
				c.Direction = engine.Ascending
			case "desc":
				c.Direction = engine.Descending
			default:
				return nil, fmt.Errorf("invalid --by direction %q: must be asc or desc", dirPart)
			}
		}

		if seen[c.Key] {
			return nil, fmt.Errorf("duplicate --by key %q", keyPart)
		}
		seen[c.Key] = true
		active = append(active, c)
	}
	return active, nil
}
