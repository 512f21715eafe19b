package models

import (
	"strconv"
	"strings"

	"tmdb-movie-explorer/internal/tmdb"
)

const (
	// FallbackPosterURL is shown when a record carries no poster path.
	FallbackPosterURL = "https://via.placeholder.com/342x513?text=No+Poster"

	// FallbackImageBase is used when the configuration lookup fails.
	FallbackImageBase = "https://image.tmdb.org/t/p/"

	DefaultLanguage = "en-US"
)

// MovieListItem is one grid cell in the browse response.
type MovieListItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
	PosterURL   string  `json:"poster_url"`
	GenreIDs    []int   `json:"genre_ids"`
	Favorite    bool    `json:"favorite"`
}

// WindowResponse is the paginated browse response. Page counts are display
// pages, not upstream pages.
type WindowResponse struct {
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Data         []MovieListItem `json:"data"`
}

// CastMember is one top-billed cast credit.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// MovieDetail is the details-drawer payload.
type MovieDetail struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Overview      string       `json:"overview"`
	ReleaseDate   string       `json:"release_date"`
	Runtime       int          `json:"runtime"`
	VoteAverage   float64      `json:"vote_average"`
	Genres        []string     `json:"genres"`
	Language      string       `json:"language"`
	PosterURL     string       `json:"poster_url"`
	BackdropURL   string       `json:"backdrop_url"`
	TrailerURL    string       `json:"trailer_url,omitempty"`
	Certification string       `json:"certification,omitempty"`
	Cast          []CastMember `json:"cast"`
	TMDBURL       string       `json:"tmdb_url"`
	Favorite      bool         `json:"favorite"`
}

// WatchProviders lists provider names for one region, grouped by offer type.
// Names are deduplicated and sorted; empty groups are omitted.
type WatchProviders struct {
	Region   string   `json:"region"`
	Link     string   `json:"link,omitempty"`
	Flatrate []string `json:"flatrate,omitempty"`
	Rent     []string `json:"rent,omitempty"`
	Buy      []string `json:"buy,omitempty"`
	Ads      []string `json:"ads,omitempty"`
	Free     []string `json:"free,omitempty"`
}

// Genre is one genre reference entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Region is one watch-provider region reference entry.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FavoritesResponse lists the session's favorites resolved to details.
type FavoritesResponse struct {
	Count int           `json:"count"`
	Data  []MovieDetail `json:"data"`
}

// BrowseParams holds the browse query parameters. An empty Query selects
// discover mode; otherwise keyword search runs and the discover filters are
// ignored.
type BrowseParams struct {
	Query            string  `query:"query"`
	Page             int     `query:"page"`
	Language         string  `query:"language"`
	Genres           string  `query:"genres"`
	Year             int     `query:"year"`
	Region           string  `query:"region"`
	SortBy           string  `query:"sort_by"`
	IncludeAdult     bool    `query:"include_adult"`
	VoteGTE          float64 `query:"vote_gte"`
	VoteLTE          float64 `query:"vote_lte"`
	RuntimeGTE       int     `query:"runtime_gte"`
	RuntimeLTE       int     `query:"runtime_lte"`
	OriginalLanguage string  `query:"original_language"`
}

var validSorts = map[string]bool{
	"popularity.desc":           true,
	"popularity.asc":            true,
	"vote_average.desc":         true,
	"vote_average.asc":          true,
	"primary_release_date.desc": true,
	"primary_release_date.asc":  true,
	"revenue.desc":              true,
	"revenue.asc":               true,
}

// Validate sets defaults and clamps out-of-range values. Pages past the end
// of the result set are accepted as-is and answered with an empty window.
func (p *BrowseParams) Validate() {
	p.Query = strings.TrimSpace(p.Query)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if !validSorts[p.SortBy] {
		p.SortBy = tmdb.DefaultSort
	}
	if p.VoteGTE < 0 {
		p.VoteGTE = 0
	}
	if p.VoteLTE > 10 {
		p.VoteLTE = 10
	}
	if p.RuntimeGTE < 0 {
		p.RuntimeGTE = 0
	}
	if p.RuntimeLTE > 400 {
		p.RuntimeLTE = 400
	}
}

// Filters converts the discover parameters into the upstream filter set.
func (p BrowseParams) Filters() tmdb.Filters {
	return tmdb.Filters{
		Genres:           p.GenreIDs(),
		Year:             p.Year,
		Region:           p.Region,
		SortBy:           p.SortBy,
		IncludeAdult:     p.IncludeAdult,
		VoteGTE:          p.VoteGTE,
		VoteLTE:          p.VoteLTE,
		RuntimeGTE:       p.RuntimeGTE,
		RuntimeLTE:       p.RuntimeLTE,
		OriginalLanguage: p.OriginalLanguage,
	}
}

// GenreIDs parses the comma-joined genre list, skipping malformed entries.
func (p BrowseParams) GenreIDs() []int {
	if p.Genres == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(p.Genres, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
