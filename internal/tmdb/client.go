package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AdriannBdzz/movie-app/internal/models"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client habla con la API v3 de TMDB. Todas las llamadas pueden fallar con un
// error genérico de servicio; los callers degradan por ítem, nunca abortan el
// pipeline completo.
type Client struct {
	// BaseURL es sobreescribible en tests (httptest).
	BaseURL string

	apiKey string
	lang   string
	region string
	http   *http.Client
}

func NewClient(apiKey, lang, region string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		lang:    lang,
		region:  region,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creando request TMDB: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("llamando a TMDB %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TMDB %s devolvió %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// ====== payloads crudos de TMDB ======

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"` // search a veces trae name en vez de title
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

func (m movieResult) minimal() models.Movie {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	return models.Movie{
		ID:         m.ID,
		Title:      title,
		PosterPath: m.PosterPath,
		GenreIDs:   m.GenreIDs,
	}
}

func (m movieResult) withRating() models.Movie {
	out := m.minimal()
	out.VoteAverage = m.VoteAverage
	out.VoteCount = m.VoteCount
	return out
}

type listResult struct {
	Results []movieResult `json:"results"`
}

// ====== operaciones ======

// SearchMovies busca por título. Devuelve la forma mínima.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	params := url.Values{
		"query":         {query},
		"include_adult": {"false"},
		"language":      {c.lang},
		"region":        {c.region},
		"page":          {"1"},
	}

	var data listResult
	if err := c.get(ctx, "/search/movie", params, &data); err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(data.Results))
	for _, m := range data.Results {
		out = append(out, m.minimal())
	}
	return out, nil
}

// PopularMovies devuelve una página del listado global de populares.
func (c *Client) PopularMovies(ctx context.Context, page int) ([]models.Movie, error) {
	params := url.Values{
		"language": {c.lang},
		"region":   {c.region},
		"page":     {strconv.Itoa(page)},
	}

	var data listResult
	if err := c.get(ctx, "/movie/popular", params, &data); err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(data.Results))
	for _, m := range data.Results {
		out = append(out, m.minimal())
	}
	return out, nil
}

// MovieDetails trae detalles básicos, suficiente para asegurar genre_ids.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (models.Movie, error) {
	params := url.Values{"language": {c.lang}}

	var data struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
		Genres     []struct {
			ID int `json:"id"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), params, &data); err != nil {
		return models.Movie{}, err
	}

	genres := make([]int, 0, len(data.Genres))
	for _, g := range data.Genres {
		genres = append(genres, g.ID)
	}
	return models.Movie{
		ID:         data.ID,
		Title:      data.Title,
		PosterPath: data.PosterPath,
		GenreIDs:   genres,
	}, nil
}

func (c *Client) discover(ctx context.Context, filterKey string, ids []int, page int) ([]models.Movie, error) {
	params := url.Values{
		"language":      {c.lang},
		"region":        {c.region},
		"include_adult": {"false"},
		"sort_by":       {"popularity.desc"},
		filterKey:       {joinInts(ids)},
		"page":          {strconv.Itoa(page)},
	}

	var data listResult
	if err := c.get(ctx, "/discover/movie", params, &data); err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(data.Results))
	for _, m := range data.Results {
		out = append(out, m.withRating())
	}
	return out, nil
}

// DiscoverByGenres lista candidatas por géneros (incluye voto).
func (c *Client) DiscoverByGenres(ctx context.Context, genreIDs []int, page int) ([]models.Movie, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}
	return c.discover(ctx, "with_genres", genreIDs, page)
}

// DiscoverByKeywords lista candidatas por keywords (incluye voto).
func (c *Client) DiscoverByKeywords(ctx context.Context, keywordIDs []int, page int) ([]models.Movie, error) {
	if len(keywordIDs) == 0 {
		return nil, nil
	}
	return c.discover(ctx, "with_keywords", keywordIDs, page)
}

// MovieEnriched trae el registro completo: géneros, keywords, directores,
// colección y voto, en una sola llamada con append_to_response.
func (c *Client) MovieEnriched(ctx context.Context, movieID int) (models.Movie, error) {
	params := url.Values{
		"language":           {c.lang},
		"append_to_response": {"keywords,credits"},
	}

	var data struct {
		ID         int     `json:"id"`
		Title      string  `json:"title"`
		PosterPath string  `json:"poster_path"`
		VoteAvg    float64 `json:"vote_average"`
		VoteCount  int     `json:"vote_count"`
		Genres     []struct {
			ID int `json:"id"`
		} `json:"genres"`
		Keywords struct {
			Keywords []struct {
				ID int `json:"id"`
			} `json:"keywords"`
		} `json:"keywords"`
		Credits struct {
			Crew []struct {
				ID  int    `json:"id"`
				Job string `json:"job"`
			} `json:"crew"`
		} `json:"credits"`
		Collection *struct {
			ID int `json:"id"`
		} `json:"belongs_to_collection"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), params, &data); err != nil {
		return models.Movie{}, err
	}

	out := models.Movie{
		ID:          data.ID,
		Title:       data.Title,
		PosterPath:  data.PosterPath,
		VoteAverage: data.VoteAvg,
		VoteCount:   data.VoteCount,
	}
	for _, g := range data.Genres {
		out.GenreIDs = append(out.GenreIDs, g.ID)
	}
	for _, k := range data.Keywords.Keywords {
		out.KeywordIDs = append(out.KeywordIDs, k.ID)
	}
	for _, cr := range data.Credits.Crew {
		if cr.Job == "Director" {
			out.DirectorIDs = append(out.DirectorIDs, cr.ID)
		}
	}
	if data.Collection != nil {
		out.CollectionID = data.Collection.ID
	}
	return out, nil
}

// CollectionMovies lista las partes de una colección/saga (incluye voto).
func (c *Client) CollectionMovies(ctx context.Context, collectionID int) ([]models.Movie, error) {
	if collectionID == 0 {
		return nil, nil
	}
	params := url.Values{"language": {c.lang}}

	var data struct {
		Parts []movieResult `json:"parts"`
	}
	if err := c.get(ctx, "/collection/"+strconv.Itoa(collectionID), params, &data); err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(data.Parts))
	for _, m := range data.Parts {
		out = append(out, m.withRating())
	}
	return out, nil
}

// PersonDirectedMovies devuelve la filmografía como director (incluye voto).
func (c *Client) PersonDirectedMovies(ctx context.Context, personID int) ([]models.Movie, error) {
	params := url.Values{"language": {c.lang}}

	var data struct {
		Crew []struct {
			movieResult
			Job string `json:"job"`
		} `json:"crew"`
	}
	if err := c.get(ctx, "/person/"+strconv.Itoa(personID)+"/movie_credits", params, &data); err != nil {
		return nil, err
	}

	var out []models.Movie
	for _, cr := range data.Crew {
		if cr.Job == "Director" {
			out = append(out, cr.withRating())
		}
	}
	return out, nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
