package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// fieldRow is the render shape of one field definition.
type fieldRow struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Order    int      `json:"order"`
	Options  []string `json:"options,omitempty"`
}

type fieldsResult struct {
	List       string     `json:"list"`
	RatingType string     `json:"rating_type"`
	Fields     []fieldRow `json:"fields"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <list.cue>",
		Short: "Compile a list definition and show its schema",
		Long: `Compile a CUE list definition, check its structure, and print the
resulting field schema. A failing definition reports every structural
problem at once.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, args[0], cmd)
		},
	}
}

func runFields(opts *RootOptions, listPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	list, err := loadList(formatter, listPath)
	if err != nil {
		return err
	}

	result := fieldsResult{
		List:       list.Name,
		RatingType: string(list.RatingType),
		Fields:     make([]fieldRow, 0, len(list.FieldDefinitions)),
	}
	for _, def := range list.FieldDefinitions {
		result.Fields = append(result.Fields, fieldRow{
			ID:       def.ID,
			Name:     def.Name,
			Type:     string(def.Type),
			Required: def.Required,
			Order:    def.Order,
			Options:  def.Options,
		})
	}

	if formatter.Format == "json" {
		return formatter.JSON(result)
	}

	fmt.Fprintf(formatter.Writer, "%s (rating: %s)\n", result.List, result.RatingType)
	for _, f := range result.Fields {
		required := ""
		if f.Required {
			required = ", required"
		}
		options := ""
		if len(f.Options) > 0 {
			options = " [" + strings.Join(f.Options, ", ") + "]"
		}
		fmt.Fprintf(formatter.Writer, "  %d. %s (%s, %s%s)%s\n", f.Order, f.Name, f.ID, f.Type, required, options)
	}
	return nil
}
