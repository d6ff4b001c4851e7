package handler

import (
	"net/http"
	"strings"
)

// NoStore desactiva el cacheo del navegador en las rutas que cambian con
// cada favorito (búsqueda, favoritos y recomendaciones).
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if p == "/search" || strings.HasPrefix(p, "/me/favorites") || strings.HasPrefix(p, "/me/recommendations") {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			w.Header().Set("Pragma", "no-cache")
		}
		next.ServeHTTP(w, r)
	})
}
