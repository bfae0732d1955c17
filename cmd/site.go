package cmd

import (
	"github.com/ZacxDev/storefront-sections/config"
	"github.com/ZacxDev/storefront-sections/handlers"
	"github.com/ZacxDev/storefront-sections/javascript"
	"github.com/ZacxDev/storefront-sections/resolver"
	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/ZacxDev/storefront-sections/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is what serve and build share: the environment, a logger and the
// loaded manifest.
type runtime struct {
	env      config.Env
	logger   *zap.Logger
	manifest *config.SiteManifest
	catalog  *sections.Catalog
}

func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	env := config.LoadEnv()
	if m, _ := cmd.Flags().GetString("manifest"); m != "" {
		env.Manifest = m
	}

	logger, err := utils.NewLogger(env.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	manifest, err := config.LoadManifest(env.Manifest)
	if err != nil {
		return nil, errors.Wrap(err, "load manifest")
	}

	catalog, err := sections.NewCatalog(resolver.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "load section catalog")
	}

	return &runtime{env: env, logger: logger, manifest: manifest, catalog: catalog}, nil
}

// site compiles the javascript targets into jsRoot and builds the site
// serving them.
func (rt *runtime) site(jsRoot string) (*handlers.Site, error) {
	scripts, err := javascript.CompileJSTarget(rt.manifest, jsRoot)
	if err != nil {
		return nil, errors.Wrap(err, "compile javascript")
	}
	for name, path := range scripts {
		rt.logger.Info("compiled javascript target", zap.String("target", name), zap.String("path", path))
	}

	return handlers.NewSite(rt.catalog, rt.manifest,
		handlers.WithLogger(rt.logger),
		handlers.WithScripts(scripts),
		handlers.WithOrigin(rt.env.Origin),
	)
}
