package ml

import (
	"sort"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

// DefaultMaxVocab limita el tamaño del vocabulario de un modelo.
const DefaultMaxVocab = 2000

// BuildVocabulary construye el mapa token->índice a partir del corpus de
// entrenamiento (positivos + negativos), quedándose con los maxVocab tokens
// más frecuentes. Cada película aporta a lo sumo un conteo por token.
// Empates de frecuencia se resuelven por orden de primera aparición, así el
// resultado es determinístico para un mismo orden de entrada.
func BuildVocabulary(movies []models.Movie, maxVocab int) map[string]int {
	if maxVocab <= 0 {
		maxVocab = DefaultMaxVocab
	}

	counts := make(map[string]int)
	var order []string // tokens en orden de primera aparición

	for _, m := range movies {
		set := Tokens(m)
		toks := make([]string, 0, len(set))
		for t := range set {
			toks = append(toks, t)
		}
		// el set no tiene orden; lo fijamos para que la primera aparición
		// dentro de una misma película no dependa de la iteración del map
		sort.Strings(toks)

		for _, t := range toks {
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	// orden estable: frecuencia descendente, empates por primera aparición
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxVocab {
		order = order[:maxVocab]
	}

	vocab := make(map[string]int, len(order))
	for i, t := range order {
		vocab[t] = i
	}
	return vocab
}
