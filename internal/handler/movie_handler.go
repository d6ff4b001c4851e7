package handler

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/AdriannBdzz/movie-app/internal/models"
	"github.com/AdriannBdzz/movie-app/internal/service"
)

type MovieHandler struct {
	tmdb service.MetadataProvider
}

func NewMovieHandler(p service.MetadataProvider) *MovieHandler {
	return &MovieHandler{tmdb: p}
}

type searchResponse struct {
	Results []models.Movie `json:"results"`
}

// @Summary Buscar películas por título (TMDB)
// @Tags movies
// @Produce json
// @Param q query string true "texto de búsqueda (mínimo 2 caracteres)"
// @Success 200 {object} searchResponse
// @Failure 400 {string} string "consulta demasiado corta"
// @Router /search [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) < 2 {
		http.Error(w, "consulta demasiado corta", http.StatusBadRequest)
		return
	}

	results, err := h.tmdb.SearchMovies(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if results == nil {
		results = []models.Movie{}
	}

	_ = json.NewEncoder(w).Encode(searchResponse{Results: results})
}
