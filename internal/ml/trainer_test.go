package ml

import (
	"math/rand"
	"testing"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

func newTestTrainer(store SnapshotStore) *Trainer {
	return &Trainer{store: store, rng: rand.New(rand.NewSource(42))}
}

// corpus sintético separable: positivos de género 1, negativos de género 2
func sciFiMovies(n, startID int) []models.Movie {
	out := make([]models.Movie, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Movie{ID: startID + i, GenreIDs: []int{1}})
	}
	return out
}

func dramaMovies(n, startID int) []models.Movie {
	out := make([]models.Movie, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Movie{ID: startID + i, GenreIDs: []int{2}})
	}
	return out
}

func TestTrainer(t *testing.T) {
	t.Run("sin positivos no entrena nada", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		trained, err := trainer.Train(1, nil, dramaMovies(30, 100), DefaultTrainParams())
		if err != nil {
			t.Fatalf("Train: %v", err)
		}
		if trained {
			t.Error("se entrenó sin positivos")
		}

		snap, _ := store.Get(1)
		if snap != nil {
			t.Error("quedó un snapshot sin haber entrenado")
		}
	})

	t.Run("sin pool de negativos no entrena nada", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		trained, err := trainer.Train(1, sciFiMovies(5, 1), nil, DefaultTrainParams())
		if err != nil {
			t.Fatalf("Train: %v", err)
		}
		if trained {
			t.Error("se entrenó sin negativos")
		}
	})

	t.Run("positivos en el pool quedan excluidos de los negativos", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		pos := sciFiMovies(5, 1)
		// el pool es exactamente el conjunto de positivos: no queda nada
		trained, err := trainer.Train(1, pos, pos, DefaultTrainParams())
		if err != nil {
			t.Fatalf("Train: %v", err)
		}
		if trained {
			t.Error("se entrenó con pool compuesto solo por positivos")
		}
	})

	t.Run("entrena con pool menor al pedido", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		// 5 positivos piden 25 negativos pero el pool solo tiene 8
		trained, err := trainer.Train(1, sciFiMovies(5, 1), dramaMovies(8, 100), DefaultTrainParams())
		if err != nil {
			t.Fatalf("Train: %v", err)
		}
		if !trained {
			t.Fatal("no se entrenó con pool chico")
		}
	})

	t.Run("snapshot persistido es consistente", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		if _, err := trainer.Train(7, sciFiMovies(5, 1), dramaMovies(30, 100), DefaultTrainParams()); err != nil {
			t.Fatalf("Train: %v", err)
		}

		snap, err := store.Get(7)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if snap == nil {
			t.Fatal("no quedó snapshot")
		}
		if len(snap.Weights) != len(snap.Vocab) {
			t.Errorf("pesos=%d vocab=%d, deberían coincidir", len(snap.Weights), len(snap.Vocab))
		}
	})

	t.Run("el modelo separa positivos de negativos", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		if _, err := trainer.Train(7, sciFiMovies(5, 1), dramaMovies(30, 100), DefaultTrainParams()); err != nil {
			t.Fatalf("Train: %v", err)
		}

		scorer := NewScorer(store)
		scores, err := scorer.Score(7, []models.Movie{
			{ID: 900, GenreIDs: []int{1}}, // parecida a los favoritos
			{ID: 901, GenreIDs: []int{2}}, // parecida a los negativos
		})
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if len(scores) != 2 {
			t.Fatalf("len(scores) = %d", len(scores))
		}
		if scores[0] <= scores[1] {
			t.Errorf("score positivo %f <= score negativo %f", scores[0], scores[1])
		}
	})

	t.Run("reentrenar reemplaza el snapshot anterior", func(t *testing.T) {
		store := NewMemoryStore()
		trainer := newTestTrainer(store)

		if _, err := trainer.Train(3, sciFiMovies(5, 1), dramaMovies(30, 100), DefaultTrainParams()); err != nil {
			t.Fatalf("Train: %v", err)
		}
		first, _ := store.Get(3)

		// segundo entrenamiento con más señales (keywords)
		pos := sciFiMovies(5, 1)
		for i := range pos {
			pos[i].KeywordIDs = []int{10 + i}
		}
		if _, err := trainer.Train(3, pos, dramaMovies(30, 100), DefaultTrainParams()); err != nil {
			t.Fatalf("Train: %v", err)
		}
		second, _ := store.Get(3)

		if len(second.Vocab) <= len(first.Vocab) {
			t.Errorf("el segundo vocabulario (%d) debería ser mayor que el primero (%d)",
				len(second.Vocab), len(first.Vocab))
		}
	})
}
