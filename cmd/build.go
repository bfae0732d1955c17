package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/ZacxDev/storefront-sections/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync() //nolint:errcheck

		outDir, _ := cmd.Flags().GetString("out")
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return errors.Wrap(err, "create output directory")
		}

		staticDir := rt.manifest.StaticDir
		if staticDir == "" {
			staticDir = "static"
		}
		if err := copyDir(rt.manifest.Resolve(staticDir), filepath.Join(outDir, "static")); err != nil {
			return errors.Wrap(err, "copy static files")
		}

		site, err := rt.site(outDir)
		if err != nil {
			return err
		}
		router, err := site.SetupRouter()
		if err != nil {
			return err
		}

		server := httptest.NewServer(router)
		defer server.Close()

		for _, route := range site.Routes() {
			file := filepath.Join(outDir, route, "index.html")
			if err := generateStaticPage(server, route, file, http.StatusOK); err != nil {
				rt.logger.Error("generate static page", zap.String("route", route), zap.Error(err))
				continue
			}
			rt.logger.Info("generated page", zap.String("file", file))
		}

		// any unregistered path renders the not-found page
		if err := generateStaticPage(server, "/404", filepath.Join(outDir, "404.html"), http.StatusNotFound); err != nil {
			rt.logger.Error("generate not-found page", zap.Error(err))
		}

		if site.Origin() == "" {
			rt.logger.Warn("manifest has no origin, skipping sitemap")
		} else if err := utils.GenerateSitemaps(site.Origin(), site.Routes(), outDir, time.Now()); err != nil {
			rt.logger.Error("generate sitemap", zap.Error(err))
		}

		fmt.Printf("Static site generated successfully in %s\n", outDir)
		return nil
	},
}

func generateStaticPage(server *httptest.Server, route, file string, wantStatus int) error {
	resp, err := http.Get(server.URL + route)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return errors.Errorf("GET %s: status %d", route, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(file, body, 0644))
}

// copyDir copies the regular files under src into dst. A missing src is not
// an error.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
			return err
		}
		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, 0644)
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("manifest", "m", "", "Site manifest (defaults to $MANIFEST or manifest.yaml)")
	buildCmd.Flags().StringP("out", "o", "public", "Output directory")
}
