package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ZacxDev/storefront-sections/config"
	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/gobuffalo/plush"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PageHandler renders the sections of a manifest page inside the base layout.
func (s *Site) PageHandler(page config.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, skipped, err := s.catalog.RenderPage(page.Sections)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error rendering page: %v", err), http.StatusInternalServerError)
			return
		}
		for _, component := range skipped {
			s.logger.Warn("page lists unknown section", zap.String("page", page.Path), zap.String("component", component))
		}

		pageHtml, err := s.renderLayout(layoutData{
			Title:       page.Title,
			Description: page.Description,
			Path:        r.URL.Path,
			Body:        body,
			Scripts:     s.scriptsFor(page.Scripts),
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("Error rendering layout: %v", err), http.StatusInternalServerError)
			return
		}

		writeHTML(w, http.StatusOK, pageHtml)
	}
}

// CatalogHandler lists every section kind with links to preview and edit each variant.
func (s *Site) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	ctx := plush.NewContext()
	ctx.Set("components", s.catalog.Components())
	ctx.Set("variants", s.catalog.Variants())

	content, err := s.listing.Exec(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering catalog: %v", err), http.StatusInternalServerError)
		return
	}

	pageHtml, err := s.renderLayout(layoutData{Title: "Sections", Path: r.URL.Path, Body: raw(content)})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering layout: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, pageHtml)
}

// PreviewHandler renders one section variant. GET uses the defaults; POST
// takes the content map ({"<type>": {...}}) as a JSON body.
func (s *Site) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var content interface{}
	if r.Method == http.MethodPost {
		var err error
		if content, err = decodeContent(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	body, err := s.catalog.Render(vars["component"], vars["type"], content)
	if errors.Is(err, sections.ErrUnknownSection) {
		s.Custom404Handler(w, r)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering section: %v", err), http.StatusInternalServerError)
		return
	}

	pageHtml, err := s.renderLayout(layoutData{
		Title:   vars["component"] + " / " + vars["type"],
		Path:    r.URL.Path,
		Body:    body,
		Scripts: s.scriptsFor(nil),
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering layout: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, pageHtml)
}

// decodeContent reads an optional JSON value. An empty body yields nil. Any
// well-formed value is returned as is; the resolver renders defaults for
// content that is not an object.
func decodeContent(body io.Reader) (interface{}, error) {
	var content interface{}
	err := json.NewDecoder(body).Decode(&content)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode section content")
	}
	return content, nil
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
