package ml

import "github.com/AdriannBdzz/movie-app/internal/models"

// Scorer puntúa candidatas con el snapshot entrenado de un usuario.
type Scorer struct {
	store SnapshotStore
}

func NewScorer(store SnapshotStore) *Scorer {
	return &Scorer{store: store}
}

// Score devuelve una pseudo-probabilidad en [0,1] por película, en el mismo
// orden de entrada. Si el usuario no tiene modelo (o movies está vacío)
// devuelve nil y el caller degrada a "sin señal de modelo".
func (s *Scorer) Score(userID int, movies []models.Movie) ([]float64, error) {
	if len(movies) == 0 {
		return nil, nil
	}

	snap, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	scores := make([]float64, len(movies))
	for i, m := range movies {
		scores[i] = sigmoid(dot(Vectorize(m, snap.Vocab), snap.Weights))
	}
	return scores, nil
}
