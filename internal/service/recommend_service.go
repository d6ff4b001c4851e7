package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/AdriannBdzz/movie-app/internal/ml"
	"github.com/AdriannBdzz/movie-app/internal/models"
	"github.com/AdriannBdzz/movie-app/internal/repository"
)

// Parámetros de control para diversidad y ranking.
const (
	MinFavoritesForModel = 5 // favoritos mínimos para entrenar/recomendar

	MaxPerCollectionCandidates = 3   // cuántas entran por saga como candidatas
	MaxPerCollectionFinal      = 2   // cuántas pueden aparecer en el top final
	MinVoteCountForRating      = 150 // ignora notas con pocos votos
	MLWeight                   = 0.85

	MaxEnrichCandidates = 60 // tope de candidatas que se enriquecen
	MaxResults          = 20
	discoverPages       = 2
	topSignals          = 3
)

// ErrNotEnoughFavorites: el usuario todavía no marcó suficientes favoritos.
var ErrNotEnoughFavorites = errors.New("se necesitan al menos 5 favoritos para ver recomendaciones")

// RecommendService implementa el pipeline completo: enriquecer favoritos,
// extraer señales, juntar candidatas por fuente, entrenar/puntuar con el
// modelo del usuario y rankear con diversidad por colección.
type RecommendService struct {
	tmdb    MetadataProvider
	store   ml.SnapshotStore
	trainer *ml.Trainer
	scorer  *ml.Scorer
	recRepo *repository.RecommendationRepository // opcional: historial en Mongo
}

func NewRecommendService(
	tmdb MetadataProvider,
	store ml.SnapshotStore,
	recRepo *repository.RecommendationRepository,
) *RecommendService {
	return &RecommendService{
		tmdb:    tmdb,
		store:   store,
		trainer: ml.NewTrainer(store),
		scorer:  ml.NewScorer(store),
		recRepo: recRepo,
	}
}

// ====== señales del usuario ======

type signals struct {
	topGenres    []int
	topKeywords  []int
	topDirectors []int
	collections  []int // todas, en orden de primera aparición
}

// topIDs cuenta apariciones y devuelve los n ids más frecuentes. Los empates
// se resuelven por orden de primer encuentro.
func topIDs(ids []int, n int) []int {
	counts := make(map[int]int)
	var order []int
	for _, id := range ids {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func extractSignals(favorites []models.Movie) signals {
	var genres, keywords, directors []int
	var collections []int
	seenColl := make(map[int]struct{})

	for _, m := range favorites {
		genres = append(genres, m.GenreIDs...)
		keywords = append(keywords, m.KeywordIDs...)
		directors = append(directors, m.DirectorIDs...)
		if m.CollectionID != 0 {
			if _, ok := seenColl[m.CollectionID]; !ok {
				seenColl[m.CollectionID] = struct{}{}
				collections = append(collections, m.CollectionID)
			}
		}
	}

	return signals{
		topGenres:    topIDs(genres, topSignals),
		topKeywords:  topIDs(keywords, topSignals),
		topDirectors: topIDs(directors, topSignals),
		collections:  collections,
	}
}

// ====== candidatas ======

func excludeIDs(movies []models.Movie, exclude map[int]struct{}) []models.Movie {
	out := movies[:0:0]
	for _, m := range movies {
		if _, ok := exclude[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// sourceCandidates consulta las fuentes en orden de prioridad:
// colecciones > directores > keywords > géneros, con populares como último
// recurso. Cada fallo del proveedor se loguea y se sigue con la siguiente
// fuente.
func (s *RecommendService) sourceCandidates(ctx context.Context, sig signals, favIDs map[int]struct{}) []models.Movie {
	var candidates []models.Movie

	// Colecciones: mejor valoradas primero y tope por saga
	for _, cid := range sig.collections {
		coll, err := s.tmdb.CollectionMovies(ctx, cid)
		if err != nil {
			log.Printf("[reco] colección %d falló: %v", cid, err)
			continue
		}
		coll = excludeIDs(coll, favIDs)
		sort.SliceStable(coll, func(i, j int) bool {
			if coll[i].VoteAverage != coll[j].VoteAverage {
				return coll[i].VoteAverage > coll[j].VoteAverage
			}
			return coll[i].VoteCount > coll[j].VoteCount
		})
		if len(coll) > MaxPerCollectionCandidates {
			coll = coll[:MaxPerCollectionCandidates]
		}
		candidates = append(candidates, coll...)
	}

	// Directores
	for _, d := range sig.topDirectors {
		movies, err := s.tmdb.PersonDirectedMovies(ctx, d)
		if err != nil {
			log.Printf("[reco] filmografía de %d falló: %v", d, err)
			continue
		}
		candidates = append(candidates, excludeIDs(movies, favIDs)...)
	}

	// Keywords
	if len(sig.topKeywords) > 0 {
		for page := 1; page <= discoverPages; page++ {
			kws, err := s.tmdb.DiscoverByKeywords(ctx, sig.topKeywords, page)
			if err != nil {
				log.Printf("[reco] discover por keywords (pág %d) falló: %v", page, err)
				continue
			}
			candidates = append(candidates, excludeIDs(kws, favIDs)...)
		}
	}

	// Géneros
	if len(sig.topGenres) > 0 {
		for page := 1; page <= discoverPages; page++ {
			gens, err := s.tmdb.DiscoverByGenres(ctx, sig.topGenres, page)
			if err != nil {
				log.Printf("[reco] discover por géneros (pág %d) falló: %v", page, err)
				continue
			}
			candidates = append(candidates, excludeIDs(gens, favIDs)...)
		}
	}

	// Último recurso: populares
	if len(candidates) == 0 {
		pop, err := s.tmdb.PopularMovies(ctx, 1)
		if err != nil {
			log.Printf("[reco] populares falló: %v", err)
		} else {
			candidates = append(candidates, excludeIDs(pop, favIDs)...)
		}
	}

	return candidates
}

// dedupCandidates deduplica por id (gana la primera aparición, que es la de
// mayor prioridad de fuente) y corta en limit. Lo que queda fuera del corte
// no se rankea.
func dedupCandidates(candidates []models.Movie, favIDs map[int]struct{}, limit int) []models.Movie {
	seen := make(map[int]struct{}, len(candidates))
	var unique []models.Movie
	for _, c := range candidates {
		if _, ok := favIDs[c.ID]; ok {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		unique = append(unique, c)
		if len(unique) >= limit {
			break
		}
	}
	return unique
}

// enrichAll enriquece en paralelo conservando el orden por índice; el orden
// del resultado nunca depende de qué llamada terminó primero.
func (s *RecommendService) enrichAll(ctx context.Context, movies []models.Movie) []models.Movie {
	out := make([]models.Movie, len(movies))

	sem := make(chan struct{}, 8)
	var wg sync.WaitGroup
	for i, m := range movies {
		wg.Add(1)
		go func(i int, m models.Movie) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[i] = enrichMovie(ctx, s.tmdb, m)
		}(i, m)
	}
	wg.Wait()

	return out
}

// ====== ranking ======

type rankedMovie struct {
	models.Movie
	Score float64
}

// rankCandidates combina score del modelo y rating normalizado
// (final = MLWeight*ml + (1-MLWeight)*ratingNorm), ordena descendente y
// aplica el tope por colección. Un mismatch de scores degrada el modelo a 0.
func rankCandidates(candidates []models.Movie, mlScores []float64) []rankedMovie {
	if len(mlScores) != len(candidates) {
		mlScores = make([]float64, len(candidates))
	}

	scored := make([]rankedMovie, 0, len(candidates))
	for i, c := range candidates {
		ratingNorm := 0.0
		if c.VoteCount >= MinVoteCountForRating {
			ratingNorm = c.VoteAverage / 10.0
		}
		final := MLWeight*mlScores[i] + (1.0-MLWeight)*ratingNorm
		scored = append(scored, rankedMovie{Movie: c, Score: final})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	perCollection := make(map[int]int)
	var top []rankedMovie
	for _, rm := range scored {
		col := rm.CollectionID
		if col != 0 && perCollection[col] >= MaxPerCollectionFinal {
			continue
		}
		if col != 0 {
			perCollection[col]++
		}
		top = append(top, rm)
		if len(top) >= MaxResults {
			break
		}
	}
	return top
}

// ====== operaciones públicas ======

// Recommend corre el pipeline completo para un usuario a partir de sus
// favoritos (forma mínima, tal como vienen del store).
func (s *RecommendService) Recommend(ctx context.Context, userID int, favorites []models.Movie) ([]models.Movie, error) {
	return s.RecommendWithProgress(ctx, userID, favorites, nil)
}

// RecommendWithProgress es Recommend notificando cada etapa (para el
// endpoint WebSocket). progress puede ser nil.
func (s *RecommendService) RecommendWithProgress(
	ctx context.Context,
	userID int,
	favorites []models.Movie,
	progress func(stage string),
) ([]models.Movie, error) {
	notify := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	if len(favorites) < MinFavoritesForModel {
		return nil, ErrNotEnoughFavorites
	}

	favIDs := make(map[int]struct{}, len(favorites))
	for _, f := range favorites {
		favIDs[f.ID] = struct{}{}
	}

	notify("enriching_favorites")
	favs := s.enrichAll(ctx, favorites)

	sig := extractSignals(favs)

	notify("sourcing_candidates")
	candidates := s.sourceCandidates(ctx, sig, favIDs)
	unique := dedupCandidates(candidates, favIDs, MaxEnrichCandidates)

	notify("enriching_candidates")
	enriched := s.enrichAll(ctx, unique)

	// entrenar de forma oportunista si el usuario aún no tiene modelo
	notify("scoring")
	snap, err := s.store.Get(userID)
	if err != nil {
		log.Printf("[reco] leyendo snapshot de usuario %d: %v", userID, err)
	}
	if snap == nil {
		if _, err := s.trainer.Train(userID, favs, enriched, ml.DefaultTrainParams()); err != nil {
			log.Printf("[reco] entrenamiento oportunista de usuario %d falló: %v", userID, err)
		}
	}

	mlScores, err := s.scorer.Score(userID, enriched)
	if err != nil {
		log.Printf("[reco] scoring de usuario %d falló, se rankea solo por rating: %v", userID, err)
		mlScores = nil
	}
	modelUsed := len(mlScores) == len(enriched) && len(enriched) > 0

	ranked := rankCandidates(enriched, mlScores)

	s.saveHistory(ctx, userID, ranked, modelUsed, len(enriched))

	out := make([]models.Movie, 0, len(ranked))
	for _, rm := range ranked {
		out = append(out, rm.Movie)
	}
	return out, nil
}

// saveHistory guarda la lista servida en Mongo; si falla solo se loguea.
func (s *RecommendService) saveHistory(ctx context.Context, userID int, ranked []rankedMovie, modelUsed bool, candidates int) {
	if s.recRepo == nil {
		return
	}

	items := make([]models.RecItem, 0, len(ranked))
	for _, rm := range ranked {
		items = append(items, models.RecItem{
			MovieID:    rm.ID,
			Title:      rm.Title,
			PosterPath: rm.PosterPath,
			Score:      rm.Score,
		})
	}

	hist := &models.Recommendation{
		UserID:     userID,
		Algo:       "logreg-tokens",
		ModelUsed:  modelUsed,
		Candidates: candidates,
		Items:      items,
		CreatedAt:  time.Now(),
	}
	if err := s.recRepo.Insert(ctx, hist); err != nil {
		log.Printf("[reco] error guardando historial en Mongo: %v", err)
	}
}

// RetrainIfEligible reentrena el modelo del usuario si ya tiene suficientes
// favoritos; con menos de 5 es un no-op. El pool de negativos sale de
// discover por géneros top + populares.
func (s *RecommendService) RetrainIfEligible(ctx context.Context, userID int, favorites []models.Movie) error {
	if len(favorites) < MinFavoritesForModel {
		return nil
	}

	favs := s.enrichAll(ctx, favorites)

	var genres []int
	for _, m := range favs {
		genres = append(genres, m.GenreIDs...)
	}
	topGenres := topIDs(genres, topSignals)

	var pool []models.Movie
	if len(topGenres) > 0 {
		for page := 1; page <= discoverPages; page++ {
			gens, err := s.tmdb.DiscoverByGenres(ctx, topGenres, page)
			if err != nil {
				log.Printf("[reco] pool de negativos (géneros pág %d) falló: %v", page, err)
				continue
			}
			pool = append(pool, gens...)
		}
	}
	pop, err := s.tmdb.PopularMovies(ctx, 1)
	if err != nil {
		log.Printf("[reco] pool de negativos (populares) falló: %v", err)
	} else {
		pool = append(pool, pop...)
	}

	favIDs := make(map[int]struct{}, len(favs))
	for _, f := range favs {
		favIDs[f.ID] = struct{}{}
	}
	pool = dedupCandidates(pool, favIDs, len(pool))

	trained, err := s.trainer.Train(userID, favs, pool, ml.DefaultTrainParams())
	if err != nil {
		return err
	}
	if trained {
		log.Printf("[reco] modelo de usuario %d reentrenado (%d favoritos, pool=%d)", userID, len(favs), len(pool))
	}
	return nil
}

// History devuelve las últimas listas servidas al usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if s.recRepo == nil {
		return nil, nil
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}
