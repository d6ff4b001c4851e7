package ml

import (
	"testing"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

func TestVectorize(t *testing.T) {
	vocab := map[string]int{"g1": 0, "g2": 1, "k10": 2}

	t.Run("marca 1.0 en los tokens presentes", func(t *testing.T) {
		m := models.Movie{ID: 1, GenreIDs: []int{1}, KeywordIDs: []int{10}}

		v := Vectorize(m, vocab)
		if len(v) != 3 {
			t.Fatalf("len(v) = %d, se esperaba 3", len(v))
		}
		if v[0] != 1.0 || v[1] != 0.0 || v[2] != 1.0 {
			t.Errorf("v = %v, se esperaba [1 0 1]", v)
		}
	})

	t.Run("tokens fuera del vocabulario no aportan nada", func(t *testing.T) {
		m := models.Movie{ID: 2, GenreIDs: []int{99}, Title: "Oblivion"}

		v := Vectorize(m, vocab)
		for i, x := range v {
			if x != 0 {
				t.Errorf("v[%d] = %f, se esperaba vector nulo", i, x)
			}
		}
	})

	t.Run("activos == tokens de la película que están en vocabulario", func(t *testing.T) {
		m := models.Movie{ID: 3, GenreIDs: []int{1, 2, 77}}

		v := Vectorize(m, vocab)
		active := 0
		for _, x := range v {
			if x == 1.0 {
				active++
			}
		}
		if active != 2 {
			t.Errorf("activos = %d, se esperaban 2 (g1 y g2)", active)
		}
	})
}
