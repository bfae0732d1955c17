package javascript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZacxDev/storefront-sections/config"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

// CompileJSTarget bundles every manifest javascript target into outRoot and
// returns the public path of each emitted bundle keyed by target name.
// Bundles are named <entry>_<hash>.js with a sibling source map.
func CompileJSTarget(manifest *config.SiteManifest, outRoot string) (map[string]string, error) {
	emitted := make(map[string]string, len(manifest.JavascriptTargets))
	for targetName, target := range manifest.JavascriptTargets {
		outDir := filepath.Join(outRoot, target.OutDir)
		result := api.Build(api.BuildOptions{
			EntryPoints:       []string{manifest.Resolve(target.Source)},
			Bundle:            true,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			Engines: []api.Engine{
				{Name: api.EngineChrome, Version: "100"},
				{Name: api.EngineFirefox, Version: "100"},
				{Name: api.EngineSafari, Version: "15"},
				{Name: api.EngineEdge, Version: "100"},
			},
			Sourcemap: api.SourceMapExternal,
			Write:     false,
			Outdir:    outDir,
		})

		if len(result.Errors) > 0 {
			return nil, buildError(targetName, result.Errors)
		}

		// sources before maps, so every map finds its source hash
		sortedFiles := append([]api.OutputFile(nil), result.OutputFiles...)
		sort.SliceStable(sortedFiles, func(i, j int) bool {
			return !isMap(sortedFiles[i].Path) && isMap(sortedFiles[j].Path)
		})

		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return nil, errors.WithStack(err)
		}

		srcToHash := make(map[string]string)
		for _, out := range sortedFiles {
			base := filepath.Base(out.Path)
			ext := base[strings.Index(base, "."):]
			mapFile := isMap(out.Path)
			fileNameWithoutExt := base[:len(base)-len(ext)]

			var hashForFileName string
			if mapFile {
				hashForFileName = srcToHash[fileNameWithoutExt]
				if hashForFileName == "" {
					return nil, errors.Errorf("source map %s can not find hash for its source file", fileNameWithoutExt)
				}
			} else {
				hashForFileName = strings.ReplaceAll(out.Hash, "/", "")
				srcToHash[fileNameWithoutExt] = hashForFileName
			}

			name := fmt.Sprintf("%s_%s%s", fileNameWithoutExt, hashForFileName, ext)
			contents := out.Contents
			if !mapFile {
				contents = append(append([]byte(nil), contents...), []byte("//# sourceMappingURL="+name+".map")...)
			}

			if err := os.WriteFile(filepath.Join(outDir, name), contents, 0644); err != nil {
				return nil, errors.Wrapf(err, "write bundle %s", name)
			}

			if !mapFile {
				emitted[targetName] = "/" + filepath.ToSlash(filepath.Join(target.OutDir, name))
			}
		}
	}

	return emitted, nil
}

func isMap(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".map")
}

func buildError(target string, msgs []api.Message) error {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			lines = append(lines, fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		lines = append(lines, m.Text)
	}
	return errors.Errorf("javascript target %s: %s", target, strings.Join(lines, "; "))
}
