package service

import (
	"context"
	"fmt"
	"log"

	"github.com/AdriannBdzz/movie-app/internal/cache"
	"github.com/AdriannBdzz/movie-app/internal/models"
)

// MetadataProvider es el contrato con el proveedor de metadata de películas
// (TMDB en producción, un fake en tests). Cualquier llamada puede fallar con
// un error de servicio; quien llama degrada por ítem.
type MetadataProvider interface {
	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)
	PopularMovies(ctx context.Context, page int) ([]models.Movie, error)
	MovieDetails(ctx context.Context, movieID int) (models.Movie, error)
	DiscoverByGenres(ctx context.Context, genreIDs []int, page int) ([]models.Movie, error)
	DiscoverByKeywords(ctx context.Context, keywordIDs []int, page int) ([]models.Movie, error)
	MovieEnriched(ctx context.Context, movieID int) (models.Movie, error)
	CollectionMovies(ctx context.Context, collectionID int) ([]models.Movie, error)
	PersonDirectedMovies(ctx context.Context, personID int) ([]models.Movie, error)
}

// TTL de la cache Redis de enriquecimientos (la metadata de una película
// cambia muy poco; 24h ahorra la llamada más cara del pipeline).
const enrichedCacheTTL = 24 * 60 * 60

// enrichMovie completa una película con keywords/directores/colección/voto.
// Si el proveedor falla, la película queda en su forma mínima y se sigue.
func enrichMovie(ctx context.Context, p MetadataProvider, m models.Movie) models.Movie {
	key := fmt.Sprintf("tmdb:enriched:%d", m.ID)

	var cached models.Movie
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return mergeRating(cached, m)
	}

	e, err := p.MovieEnriched(ctx, m.ID)
	if err != nil {
		log.Printf("[reco] enriquecimiento de %d (%q) falló, se usa forma mínima: %v", m.ID, m.Title, err)
		return m
	}
	e = mergeRating(e, m)

	if err := cache.SetJSON(ctx, key, e, enrichedCacheTTL); err != nil {
		log.Printf("[reco] no se pudo cachear enriquecimiento de %d: %v", m.ID, err)
	}
	return e
}

// mergeRating conserva el voto que ya traía el listado si el detalle vino sin él.
func mergeRating(enriched, original models.Movie) models.Movie {
	if enriched.VoteAverage == 0 && original.VoteAverage != 0 {
		enriched.VoteAverage = original.VoteAverage
	}
	if enriched.VoteCount == 0 && original.VoteCount != 0 {
		enriched.VoteCount = original.VoteCount
	}
	return enriched
}
