package repository

import (
	"context"

	"github.com/AdriannBdzz/movie-app/internal/db"
	"github.com/AdriannBdzz/movie-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{col: db.DB().Collection("favorites")}
}

func (r *FavoriteRepository) GetOne(ctx context.Context, userID, movieID int) (*models.FavoriteDoc, error) {
	var f models.FavoriteDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) Insert(ctx context.Context, f *models.FavoriteDoc) error {
	_, err := r.col.InsertOne(ctx, f)
	return err
}

// UpdateFields aplica un $set parcial sobre un favorito (backfill).
func (r *FavoriteRepository) UpdateFields(ctx context.Context, userID, movieID int, update bson.M) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "movieId": movieID},
		bson.M{"$set": update},
	)
	return err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int) ([]models.FavoriteDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FavoriteDoc
	for cur.Next(ctx) {
		var f models.FavoriteDoc
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, cur.Err()
}

// Delete borra un favorito. Devuelve false si no existía.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, movieID int) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "movieId": movieID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
