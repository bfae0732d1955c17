package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - Compose shop pages from configurable sections",
	Long: `Storefront renders shop pages from headers, footers, heroes, shop grids,
product lists and layout blocks. Each section merges the content saved by the
page builder over its variant defaults, so a page always renders.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
