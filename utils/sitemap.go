package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// GenerateSitemaps writes sitemap.xml into outDir.
func GenerateSitemaps(origin string, routes []string, outDir string, now time.Time) error {
	xmlOutput, err := GenerateSitemapContent(origin, routes, now)
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(outDir, "sitemap.xml"), []byte(xml.Header+xmlOutput), 0644)
	return errors.WithStack(err)
}

func GenerateSitemapContent(origin string, routes []string, now time.Time) (string, error) {
	baseURL := strings.TrimSuffix(origin, "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	lastMod := now.Format("2006-01-02")
	for _, route := range routes {
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:     baseURL + route,
			LastMod: lastMod,
		})
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(xmlOutput), nil
}
