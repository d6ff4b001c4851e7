package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AdriannBdzz/movie-app/internal/models"
	"github.com/AdriannBdzz/movie-app/internal/service"

	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

func NewFavoriteHandler(s *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

// @Summary Marcar película como favorita
// @Tags favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.Movie true "película (id y title mínimo)"
// @Success 200 {object} models.Movie
// @Router /me/favorites [post]
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var movie models.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil || movie.ID == 0 {
		http.Error(w, "body inválido (id requerido)", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Add(r.Context(), userID, movie)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(f.Movie())
}

// @Summary Listar favoritos del usuario
// @Tags favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Movie
// @Router /me/favorites [get]
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	favs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if favs == nil {
		favs = []models.Movie{}
	}

	_ = json.NewEncoder(w).Encode(favs)
}

// @Summary Quitar un favorito
// @Tags favorites
// @Security BearerAuth
// @Produce json
// @Param movieId path int true "movieId"
// @Success 200 {object} map[string]bool
// @Failure 404 {string} string "no encontrado"
// @Router /me/favorites/{movieId} [delete]
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())
	movieID, _ := strconv.Atoi(chi.URLParam(r, "movieId"))

	deleted, err := h.svc.Delete(r.Context(), userID, movieID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.NotFound(w, r)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
