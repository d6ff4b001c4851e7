package service

import (
	"context"
	"log"
	"time"

	"github.com/AdriannBdzz/movie-app/internal/models"
	"github.com/AdriannBdzz/movie-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// FavoriteService maneja el CRUD de favoritos y dispara el reentrenamiento
// oportunista del modelo del usuario al agregar.
type FavoriteService struct {
	favs *repository.FavoriteRepository
	tmdb MetadataProvider
	rec  *RecommendService
}

func NewFavoriteService(
	favs *repository.FavoriteRepository,
	tmdb MetadataProvider,
	rec *RecommendService,
) *FavoriteService {
	return &FavoriteService{favs: favs, tmdb: tmdb, rec: rec}
}

// Add marca una película como favorita. Si ya existía, rellena (backfill) los
// campos desnormalizados que hubieran quedado vacíos. En ambos casos, si el
// usuario ya junta suficientes favoritos, reentrena su modelo.
func (s *FavoriteService) Add(ctx context.Context, userID int, movie models.Movie) (*models.FavoriteDoc, error) {
	// garantizar genre_ids: si el cliente no los mandó, se piden a TMDB
	genres := movie.GenreIDs
	if len(genres) == 0 {
		details, err := s.tmdb.MovieDetails(ctx, movie.ID)
		if err != nil {
			log.Printf("[favs] detalles de %d fallaron, se guarda sin géneros: %v", movie.ID, err)
		} else {
			genres = details.GenreIDs
		}
	}

	existing, err := s.favs.GetOne(ctx, userID, movie.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		update := bson.M{}
		if len(existing.GenreIDs) == 0 && len(genres) > 0 {
			update["genreIds"] = genres
			existing.GenreIDs = genres
		}
		if existing.PosterPath == "" && movie.PosterPath != "" {
			update["posterPath"] = movie.PosterPath
			existing.PosterPath = movie.PosterPath
		}
		if movie.Title != "" && movie.Title != existing.Title {
			update["title"] = movie.Title
			existing.Title = movie.Title
		}
		if len(update) > 0 {
			if err := s.favs.UpdateFields(ctx, userID, movie.ID, update); err != nil {
				return nil, err
			}
		}

		s.retrain(ctx, userID)
		return existing, nil
	}

	f := &models.FavoriteDoc{
		UserID:     userID,
		MovieID:    movie.ID,
		Title:      movie.Title,
		PosterPath: movie.PosterPath,
		GenreIDs:   genres,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.favs.Insert(ctx, f); err != nil {
		return nil, err
	}

	s.retrain(ctx, userID)
	return f, nil
}

// retrain no rompe el alta del favorito si el reentrenamiento falla.
func (s *FavoriteService) retrain(ctx context.Context, userID int) {
	favs, err := s.List(ctx, userID)
	if err != nil {
		log.Printf("[favs] listando favoritos para reentrenar usuario %d: %v", userID, err)
		return
	}
	if err := s.rec.RetrainIfEligible(ctx, userID, favs); err != nil {
		log.Printf("[favs] reentrenamiento de usuario %d falló: %v", userID, err)
	}
}

// List devuelve los favoritos del usuario en forma mínima de película.
func (s *FavoriteService) List(ctx context.Context, userID int) ([]models.Movie, error) {
	rows, err := s.favs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Movie())
	}
	return out, nil
}

// Delete quita un favorito. Devuelve false si no existía.
func (s *FavoriteService) Delete(ctx context.Context, userID, movieID int) (bool, error) {
	return s.favs.Delete(ctx, userID, movieID)
}
