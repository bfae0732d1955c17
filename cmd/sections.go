package cmd

import (
	"fmt"
	"strings"

	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List section kinds and their variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := sections.NewCatalog()
		if err != nil {
			return err
		}
		variants := catalog.Variants()
		for _, component := range catalog.Components() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", component, strings.Join(variants[component], ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
