package models

// Movie es el registro de película que fluye por todo el pipeline.
// Las listas de búsqueda/populares traen solo id/título/póster/géneros
// (forma mínima); el enriquecimiento agrega keywords, directores,
// colección y voto. CollectionID == 0 significa "sin colección".
type Movie struct {
	ID           int     `json:"id" bson:"movieId"`
	Title        string  `json:"title" bson:"title"`
	PosterPath   string  `json:"poster_path,omitempty" bson:"posterPath,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty" bson:"genreIds,omitempty"`
	KeywordIDs   []int   `json:"keyword_ids,omitempty" bson:"keywordIds,omitempty"`
	DirectorIDs  []int   `json:"director_ids,omitempty" bson:"directorIds,omitempty"`
	CollectionID int     `json:"collection_id,omitempty" bson:"collectionId,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty" bson:"voteAverage,omitempty"`
	VoteCount    int     `json:"vote_count,omitempty" bson:"voteCount,omitempty"`
}
