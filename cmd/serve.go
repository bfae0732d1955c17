package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync() //nolint:errcheck

		port := rt.env.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetString("port")
		}

		site, err := rt.site(rt.manifest.Resolve("."))
		if err != nil {
			return err
		}
		router, err := site.SetupRouter()
		if err != nil {
			return err
		}

		rt.logger.Info("starting server", zap.String("port", port), zap.String("manifest", rt.env.Manifest))
		return http.ListenAndServe(":"+port, router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
	serveCmd.Flags().StringP("manifest", "m", "", "Site manifest (defaults to $MANIFEST or manifest.yaml)")
}
