package tmdb

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultSort is the discover sort order used when none is given.
const DefaultSort = "popularity.desc"

// Filters holds the discover criteria. Zero values are absent criteria and
// are omitted from the upstream call entirely, never sent as empty strings.
type Filters struct {
	Genres           []int
	Year             int
	Region           string
	SortBy           string
	IncludeAdult     bool
	VoteGTE          float64
	VoteLTE          float64
	RuntimeGTE       int
	RuntimeLTE       int
	OriginalLanguage string
}

// Values serializes the filter set into discover query parameters. Genre ids
// are comma-joined, numeric ranges map to .gte/.lte parameter pairs, and the
// adult flag is stringified lowercase.
func (f Filters) Values() url.Values {
	v := url.Values{}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = DefaultSort
	}
	v.Set("sort_by", sortBy)
	v.Set("include_adult", strconv.FormatBool(f.IncludeAdult))

	if len(f.Genres) > 0 {
		ids := make([]string, len(f.Genres))
		for i, id := range f.Genres {
			ids[i] = strconv.Itoa(id)
		}
		v.Set("with_genres", strings.Join(ids, ","))
	}
	if f.Year > 0 {
		v.Set("primary_release_year", strconv.Itoa(f.Year))
	}
	if f.Region != "" {
		v.Set("region", f.Region)
	}
	if f.VoteGTE > 0 {
		v.Set("vote_average.gte", strconv.FormatFloat(f.VoteGTE, 'f', -1, 64))
	}
	if f.VoteLTE > 0 {
		v.Set("vote_average.lte", strconv.FormatFloat(f.VoteLTE, 'f', -1, 64))
	}
	if f.RuntimeGTE > 0 {
		v.Set("with_runtime.gte", strconv.Itoa(f.RuntimeGTE))
	}
	if f.RuntimeLTE > 0 {
		v.Set("with_runtime.lte", strconv.Itoa(f.RuntimeLTE))
	}
	if f.OriginalLanguage != "" {
		v.Set("with_original_language", f.OriginalLanguage)
	}

	return v
}
