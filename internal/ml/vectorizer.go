package ml

import (
	"math"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

// Vectorize codifica una película como vector binario bag-of-tokens sobre un
// vocabulario fijo: 1.0 en el índice de cada token presente en el vocabulario,
// 0.0 en el resto. Tokens fuera del vocabulario se descartan en silencio.
func Vectorize(m models.Movie, vocab map[string]int) []float64 {
	v := make([]float64, len(vocab))
	for t := range Tokens(m) {
		if j, ok := vocab[t]; ok {
			v[j] = 1.0
		}
	}
	return v
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
