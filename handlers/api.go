package handlers

import (
	"net/http"

	"github.com/ZacxDev/storefront-sections/sections"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// APIRouter serves the JSON endpoints used by the page builder:
//
//	GET  /api/sections                            section kinds and their types
//	POST /api/sections/:component/:type/resolve   merged config for a content map
//	POST /api/sections/:component/:type/render    rendered markup for a content map
//	POST /api/payloads/render                     rendered markup for a saved payload
func (s *Site) APIRouter() http.Handler {
	router := httprouter.New()
	router.GET("/api/sections", s.listSections)
	router.POST("/api/sections/:component/:type/resolve", s.resolveSection)
	router.POST("/api/sections/:component/:type/render", s.renderSection)
	router.POST("/api/payloads/render", s.renderPayload)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, errors.New("not found"))
	})
	return router
}

func (s *Site) listSections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.catalog.Variants())
}

func (s *Site) resolveSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	content, err := decodeContent(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.catalog.Resolve(ps.ByName("component"), ps.ByName("type"), content)
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Site) renderSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	content, err := decodeContent(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.catalog.Render(ps.ByName("component"), ps.ByName("type"), content)
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeHTML(w, http.StatusOK, string(out))
}

func (s *Site) renderPayload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload, err := sections.ParsePayload(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.catalog.RenderPayload(payload)
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeHTML(w, http.StatusOK, string(out))
}

func statusFor(err error) int {
	if errors.Is(err, sections.ErrUnknownSection) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
