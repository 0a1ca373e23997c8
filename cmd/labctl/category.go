package main

import (
	"errors"
	"fmt"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/validation"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories and their entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, errs := validation.NewValidator().ValidateLanguage(langCode)
		if len(errs) > 0 {
			return errs
		}
		strs := domain.UIStringsFor(lang.Code)
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, titleStyle.Render(strs.IntroText))
		for _, c := range domain.Categories() {
			fmt.Fprintf(w, "• %s %s\n", headingStyle.Render(strs.CategoryLabels[c.Key]), metaStyle.Render("("+string(c.Key)+")"))
			for _, kind := range domain.EntryKinds() {
				fmt.Fprintf(w, "    %s %s\n", strs.EntryLabels[kind], metaStyle.Render(string(kind)))
			}
		}
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category <key> <entry>",
	Short: "Open a category entry (theory, tasks or experiments)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, entry, errs := validation.NewValidator().ValidateCategoryEntry(args[0], args[1])
		if len(errs) > 0 {
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

		w := cmd.OutOrStdout()
		res, err := catalog.ResolveEntry(ds.Visible, key, entry)
		if err != nil {
			// A missing entry is information, not a failure.
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && (domainErr.Code == domain.CodeContentNotFound || domainErr.Code == domain.CodeTopicEmpty) {
				fmt.Fprintln(w, infoStyle.Render(domainErr.Message))
				return nil
			}
			return err
		}

		if res.Kind == catalog.ResolutionSingle {
			return showExperiment(cmd, e, res.Experiment)
		}
		strs := domain.UIStringsFor(e.lang.Code)
		printExperiments(w, strs.ThemePrefix+strs.CategoryLabels[key], res.Experiments)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(categoryCmd)
}
