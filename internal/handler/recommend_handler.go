package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AdriannBdzz/movie-app/internal/models"
	"github.com/AdriannBdzz/movie-app/internal/service"

	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	favs *service.FavoriteService
	svc  *service.RecommendService
}

func NewRecommendHandler(favs *service.FavoriteService, s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{favs: favs, svc: s}
}

type recoResponse struct {
	Count   int            `json:"count"`
	Results []models.Movie `json:"results"`
}

// @Summary Recomendaciones personalizadas
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Success 200 {object} recoResponse
// @Failure 400 {string} string "se necesitan al menos 5 favoritos"
// @Router /me/recommendations [get]
func (h *RecommendHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	favorites, err := h.favs.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	results, err := h.svc.Recommend(r.Context(), userID, favorites)
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughFavorites) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(recoResponse{Count: len(results), Results: results})
}

// @Summary Historial de recomendaciones servidas
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param limit query int false "cantidad (default 10)"
// @Success 200 {array} models.Recommendation
// @Router /me/recommendations/history [get]
func (h *RecommendHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	hist, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if hist == nil {
		hist = []models.Recommendation{}
	}

	_ = json.NewEncoder(w).Encode(hist)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones con progreso en tiempo real (WebSocket)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/ws/recommendations [get]
func (h *RecommendHandler) GetWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "no se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	userID := UserIDFromContext(r.Context())

	_ = conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando pipeline…",
	})

	favorites, err := h.favs.List(r.Context(), userID)
	if err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	progress := func(stage string) {
		_ = conn.WriteJSON(map[string]any{
			"type":  "progress",
			"stage": stage,
		})
	}

	results, err := h.svc.RecommendWithProgress(r.Context(), userID, favorites, progress)
	if err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
		return
	}

	_ = conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"count":       len(results),
		"results":     results,
		"generatedAt": time.Now(),
	})
}
