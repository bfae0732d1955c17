package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ZacxDev/storefront-sections/config"
	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/ZacxDev/storefront-sections/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve COMPONENT TYPE",
	Short: "Print the resolved config (or markup) of one section",
	Long: `Resolve merges a content map ({"<type>": {...}}) over the section's
defaults and prints the result as JSON. With --render the section markup is
printed instead. Warnings about fallbacks and backfills go to stderr.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := config.LoadEnv()
		logger, err := utils.NewLogger(env.LogLevel)
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
		defer logger.Sync() //nolint:errcheck

		catalog, err := sections.NewCatalog(resolver.WithLogger(logger))
		if err != nil {
			return err
		}

		var content interface{}
		if file, _ := cmd.Flags().GetString("content"); file != "" {
			if content, err = readContent(file); err != nil {
				return err
			}
		}

		if render, _ := cmd.Flags().GetBool("render"); render {
			out, err := catalog.Render(args[0], args[1], content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		res, err := catalog.Resolve(args[0], args[1], content)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func readContent(file string) (interface{}, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var content interface{}
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, errors.Wrapf(err, "parse content %s", file)
	}
	return content, nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringP("content", "c", "", "JSON file holding the content map")
	resolveCmd.Flags().Bool("render", false, "Print the rendered section instead of its config")
}
