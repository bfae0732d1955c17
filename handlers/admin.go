package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ZacxDev/storefront-sections/editform"
	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/gobuffalo/plush"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// EditFormHandler renders the admin form for one section variant, prefilled
// with its resolved config, followed by a live preview.
func (s *Site) EditFormHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reg, ok := s.catalog.Registry(vars["component"])
	if !ok {
		s.Custom404Handler(w, r)
		return
	}

	res, err := s.catalog.Resolve(vars["component"], vars["type"], nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	preview, err := s.catalog.Render(res.Section, res.Type, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering preview: %v", err), http.StatusInternalServerError)
		return
	}

	ctx := plush.NewContext()
	ctx.Set("form", editform.NewForm(res, reg.Types()))
	ctx.Set("preview", preview)
	content, err := s.edit.Exec(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering form: %v", err), http.StatusInternalServerError)
		return
	}

	pageHtml, err := s.renderLayout(layoutData{
		Title: "Edit " + res.Section,
		Path:  r.URL.Path,
		Body:  raw(content),
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Error rendering layout: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, pageHtml)
}

// SaveFormHandler turns a submitted edit form into the section payload the
// page builder stores, and returns it as JSON.
func (s *Site) SaveFormHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, errors.Wrap(err, "parse form"))
		return
	}

	res, err := s.catalog.Resolve(vars["component"], vars["type"], nil)
	if errors.Is(err, sections.ErrUnknownSection) {
		writeJSONError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	payload := editform.Payload(res.Section, res.Type, r.PostForm, res.Config)
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
