package ml

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

var titleNormalizer = strings.NewReplacer(":", " ", "-", " ")

// Tokens produce el conjunto de tokens categóricos/léxicos de una película:
//   - g<id> por género, k<id> por keyword, d<id> por director
//   - c<id> si pertenece a una colección
//   - t<palabra> por cada palabra del título de 5+ caracteres
//     (en minúsculas, con ':' y '-' tratados como espacios)
//
// Los campos de enriquecimiento ausentes simplemente no aportan tokens.
func Tokens(m models.Movie) map[string]struct{} {
	toks := make(map[string]struct{})

	for _, g := range m.GenreIDs {
		toks["g"+strconv.Itoa(g)] = struct{}{}
	}
	for _, k := range m.KeywordIDs {
		toks["k"+strconv.Itoa(k)] = struct{}{}
	}
	for _, d := range m.DirectorIDs {
		toks["d"+strconv.Itoa(d)] = struct{}{}
	}
	if m.CollectionID != 0 {
		toks["c"+strconv.Itoa(m.CollectionID)] = struct{}{}
	}

	title := titleNormalizer.Replace(strings.ToLower(m.Title))
	for _, w := range strings.Fields(title) {
		if utf8.RuneCountInString(w) >= 5 {
			toks["t"+w] = struct{}{}
		}
	}

	return toks
}
