package models

// FavoriteDoc es la fila de favoritos en Mongo. Guarda una copia
// desnormalizada de título/póster/géneros tal como se veían al marcar
// el favorito; se rellena después (backfill) si llegaron vacíos.
type FavoriteDoc struct {
	UserID     int    `json:"userId" bson:"userId"`
	MovieID    int    `json:"movieId" bson:"movieId"`
	Title      string `json:"title" bson:"title"`
	PosterPath string `json:"posterPath,omitempty" bson:"posterPath,omitempty"`
	GenreIDs   []int  `json:"genreIds,omitempty" bson:"genreIds,omitempty"`
	CreatedAt  string `json:"createdAt" bson:"createdAt"`
}

// Movie devuelve la vista mínima del favorito para la API y el pipeline.
func (f *FavoriteDoc) Movie() Movie {
	return Movie{
		ID:         f.MovieID,
		Title:      f.Title,
		PosterPath: f.PosterPath,
		GenreIDs:   f.GenreIDs,
	}
}
