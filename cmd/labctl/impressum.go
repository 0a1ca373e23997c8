package main

import (
	"fmt"
	"io"
	"strings"

	"alltagslabor/internal/domain"

	"github.com/spf13/cobra"
)

var impressumCmd = &cobra.Command{
	Use:   "impressum",
	Short: "Print the legal notice of the data repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		data, err := e.resources.Get(cmd.Context(), domain.ResourceImpressum)
		if err != nil {
			return err
		}
		printImpressum(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func printImpressum(w io.Writer, content string) {
	fmt.Fprintln(w, headingStyle.Render("Impressum"))
	fmt.Fprintln(w, strings.TrimSpace(content))
}

func init() {
	rootCmd.AddCommand(impressumCmd)
}
