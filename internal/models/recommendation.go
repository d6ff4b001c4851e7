package models

import "time"

type RecItem struct {
	MovieID    int     `bson:"movieId" json:"movieId"`
	Title      string  `bson:"title" json:"title"`
	PosterPath string  `bson:"posterPath,omitempty" json:"posterPath,omitempty"`
	Score      float64 `bson:"score" json:"score"`
}

// Recommendation es el historial que se guarda en Mongo cada vez que
// se sirve una lista de recomendaciones.
type Recommendation struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     int       `bson:"userId" json:"userId"`
	Algo       string    `bson:"algo" json:"algo"`
	ModelUsed  bool      `bson:"modelUsed" json:"modelUsed"`
	Candidates int       `bson:"candidates" json:"candidates"`
	Items      []RecItem `bson:"items" json:"items"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
