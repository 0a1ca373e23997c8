package main

import (
	"strings"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/validation"

	"github.com/spf13/cobra"
)

var (
	schoolType string
	subject    string
	grade      string
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search experiments by free text and facets",
	Long: `Search matches the text case-insensitively against title, description and
subject. Facet flags must match exactly; omitted facets match everything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := catalog.Query{
			Text:       strings.Join(args, " "),
			SchoolType: schoolType,
			Subject:    subject,
			Grade:      grade,
		}
		if errs := validation.NewValidator().ValidateSearchQuery(q.Text, q.SchoolType, q.Subject, q.Grade); len(errs) > 0 {
			return errs
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		ds, err := e.dataset(cmd.Context())
		if err != nil {
			return err
		}

		printExperiments(cmd.OutOrStdout(), "Suchergebnisse", catalog.Filter(ds.Visible, q.WithDefaults()))
		return nil
	},
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the selectable facet values",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ds, err := e.dataset(cmd.Context())
		if err != nil {
			return err
		}
		printFacets(cmd.OutOrStdout(), ds.Facets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(facetsCmd)
	searchCmd.Flags().StringVarP(&schoolType, "school", "s", "", "School type")
	searchCmd.Flags().StringVar(&subject, "subject", "", "Subject")
	searchCmd.Flags().StringVarP(&grade, "grade", "g", "", "Grade level")
}
