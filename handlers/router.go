package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/ZacxDev/storefront-sections/utils"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Site) SetupRouter() (*mux.Router, error) {
	router := mux.NewRouter()
	router.Use(s.logRequests)

	router.NotFoundHandler = s.logRequests(http.HandlerFunc(s.Custom404Handler))

	staticDir := s.manifest.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.manifest.Resolve(staticDir)))))

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	s.registeredRoutes = nil
	for _, page := range s.manifest.Pages {
		router.HandleFunc(page.Path, s.PageHandler(page)).Methods("GET")
		s.registeredRoutes = append(s.registeredRoutes, page.Path)
	}

	router.HandleFunc("/sections", s.CatalogHandler).Methods("GET")
	router.HandleFunc("/sections/{component}/{type}", s.PreviewHandler).Methods("GET", "POST")
	router.HandleFunc("/admin/sections/{component}/{type}", s.EditFormHandler).Methods("GET")
	router.HandleFunc("/admin/sections/{component}/{type}", s.SaveFormHandler).Methods("POST")
	router.PathPrefix("/api/").Handler(s.APIRouter())

	routes := s.Routes()
	router.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		sitemap, err := utils.GenerateSitemapContent(s.origin, routes, time.Now())
		if err != nil {
			http.Error(w, "Error generating sitemap", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sitemap))
	}).Methods("GET")

	return router, nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Site) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
