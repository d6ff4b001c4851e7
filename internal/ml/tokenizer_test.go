package ml

import (
	"testing"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

func TestTokens(t *testing.T) {
	t.Run("movie completa genera un token por señal", func(t *testing.T) {
		m := models.Movie{
			ID:           1,
			Title:        "Inception",
			GenreIDs:     []int{1, 2},
			KeywordIDs:   []int{10},
			DirectorIDs:  []int{5},
			CollectionID: 7,
		}

		got := Tokens(m)
		want := []string{"g1", "g2", "k10", "d5", "c7", "tinception"}

		if len(got) != len(want) {
			t.Fatalf("tokens = %v, se esperaban %d", got, len(want))
		}
		for _, tok := range want {
			if _, ok := got[tok]; !ok {
				t.Errorf("falta token %q en %v", tok, got)
			}
		}
	})

	t.Run("campos opcionales ausentes no aportan tokens", func(t *testing.T) {
		m := models.Movie{ID: 2, Title: "Up", GenreIDs: []int{16}}

		got := Tokens(m)
		if len(got) != 1 {
			t.Fatalf("tokens = %v, se esperaba solo g16", got)
		}
		if _, ok := got["g16"]; !ok {
			t.Errorf("falta g16 en %v", got)
		}
	})

	t.Run("palabras de título cortas se descartan", func(t *testing.T) {
		// "no", "way" y "home" son cortas; "spider" y "man" salen del guión
		m := models.Movie{ID: 3, Title: "Spider-Man: No Way Home"}

		got := Tokens(m)
		if _, ok := got["tspider"]; !ok {
			t.Errorf("se esperaba tspider en %v", got)
		}
		if _, ok := got["tman"]; ok {
			t.Errorf("tman no debería estar (3 caracteres): %v", got)
		}
		if _, ok := got["thome"]; ok {
			t.Errorf("thome no debería estar (4 caracteres): %v", got)
		}
	})

	t.Run("título se normaliza a minúsculas", func(t *testing.T) {
		m := models.Movie{ID: 4, Title: "INTERSTELLAR"}

		if _, ok := Tokens(m)["tinterstellar"]; !ok {
			t.Errorf("se esperaba tinterstellar")
		}
	})
}
