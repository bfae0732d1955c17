package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gobuffalo/plush"
	"go.uber.org/zap"
)

// Custom404Handler renders the manifest's not_found sections around a
// not-found message.
func (s *Site) Custom404Handler(w http.ResponseWriter, r *http.Request) {
	ctx := plush.NewContext()
	ctx.Set("path", r.URL.Path)

	notFoundContent, err := s.notFound.Exec(ctx)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// the message goes after the first section (normally the header)
	var body strings.Builder
	placed := false
	for _, p := range s.manifest.NotFound {
		out, err := s.catalog.RenderPayload(p)
		if err != nil {
			s.logger.Warn("skipping not-found section", zap.String("component", p.Component), zap.Error(err))
			continue
		}
		body.WriteString(string(out))
		if !placed {
			body.WriteString(notFoundContent)
			placed = true
		}
	}
	if !placed {
		body.WriteString(notFoundContent)
	}

	pageHtml, err := s.renderLayout(layoutData{
		Title: "Page not found",
		Path:  r.URL.Path,
		Body:  raw(body.String()),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusNotFound, pageHtml)
}

// raw marks markup we produced ourselves from escaped templates.
func raw(s string) template.HTML {
	return template.HTML(s)
}
