package ml

import (
	"math/rand"
	"time"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

// TrainParams son los hiperparámetros de la regresión logística por usuario.
type TrainParams struct {
	NegRatio     int     // negativos por cada positivo
	Epochs       int     // iteraciones de descenso de gradiente
	LearningRate float64 // tasa de aprendizaje
	L2           float64 // regularización L2
	MaxVocab     int     // tope del vocabulario
}

func DefaultTrainParams() TrainParams {
	return TrainParams{
		NegRatio:     5,
		Epochs:       250,
		LearningRate: 0.2,
		L2:           1e-4,
		MaxVocab:     DefaultMaxVocab,
	}
}

// Trainer entrena y persiste el modelo binario de un usuario:
// positivos = favoritos enriquecidos, negativos = muestra aleatoria de
// candidatas no favoritas.
type Trainer struct {
	store SnapshotStore
	rng   *rand.Rand
}

func NewTrainer(store SnapshotStore) *Trainer {
	return &Trainer{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Train ajusta el clasificador por descenso de gradiente full-batch sobre la
// pérdida logística y reemplaza el snapshot previo del usuario. Devuelve
// false (sin error) cuando no hay datos suficientes y no se entrena nada.
func (t *Trainer) Train(userID int, positives, negativesPool []models.Movie, p TrainParams) (bool, error) {
	// fuera del pool cualquier película que ya sea positiva
	posIDs := make(map[int]struct{}, len(positives))
	for _, m := range positives {
		posIDs[m.ID] = struct{}{}
	}
	pool := make([]models.Movie, 0, len(negativesPool))
	for _, m := range negativesPool {
		if _, ok := posIDs[m.ID]; !ok {
			pool = append(pool, m)
		}
	}

	nPos := len(positives)
	nNeg := nPos * p.NegRatio
	if nNeg < 20 {
		nNeg = 20
	}
	if nNeg > len(pool) {
		nNeg = len(pool)
	}
	if nPos == 0 || nNeg == 0 {
		return false, nil
	}

	// muestra uniforme sin reemplazo
	negatives := make([]models.Movie, 0, nNeg)
	for _, idx := range t.rng.Perm(len(pool))[:nNeg] {
		negatives = append(negatives, pool[idx])
	}

	corpus := make([]models.Movie, 0, nPos+nNeg)
	corpus = append(corpus, positives...)
	corpus = append(corpus, negatives...)
	vocab := BuildVocabulary(corpus, p.MaxVocab)

	n := len(corpus)
	dim := len(vocab)
	X := make([][]float64, n)
	y := make([]float64, n)
	for i, m := range corpus {
		X[i] = Vectorize(m, vocab)
		if i < nPos {
			y[i] = 1.0
		}
	}

	w := make([]float64, dim)
	grad := make([]float64, dim)
	for epoch := 0; epoch < p.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		for i := 0; i < n; i++ {
			e := sigmoid(dot(X[i], w)) - y[i]
			for j, x := range X[i] {
				if x != 0 {
					grad[j] += x * e
				}
			}
		}
		for j := range w {
			g := grad[j]/float64(n) + p.L2*w[j]
			w[j] -= p.LearningRate * g
		}
	}

	if err := t.store.Put(userID, &Snapshot{Weights: w, Vocab: vocab}); err != nil {
		return false, err
	}
	return true, nil
}
