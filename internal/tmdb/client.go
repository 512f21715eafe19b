package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// requestTimeout is the fixed budget for every outbound call.
const requestTimeout = 20 * time.Second

// regionPriority puts common watch-provider regions ahead of the
// alphabetical remainder.
var regionPriority = map[string]bool{
	"US": true, "KR": true, "JP": true, "GB": true, "FR": true, "DE": true,
	"ES": true, "IT": true, "AU": true, "CA": true, "IN": true, "CN": true,
}

// Client is the TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SearchMovies fetches one page of keyword search results.
func (c *Client) SearchMovies(query string, page int, language string) (*Page, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("language", language)
	params.Set("include_adult", "false")

	slog.Debug("fetching TMDB search", "query", query, "page", page)
	var result Page
	if err := c.get("/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DiscoverMovies fetches one page of filtered discover results.
func (c *Client) DiscoverMovies(filters Filters, page int, language string) (*Page, error) {
	params := filters.Values()
	params.Set("page", strconv.Itoa(page))
	params.Set("language", language)

	slog.Debug("fetching TMDB discover", "page", page)
	var result Page
	if err := c.get("/discover/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovieDetail fetches the extended record for one movie, with videos,
// credits and release dates appended in the same call.
func (c *Client) GetMovieDetail(movieID int, language string) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("language", language)
	params.Set("append_to_response", "videos,credits,release_dates")

	slog.Debug("fetching TMDB movie detail", "movie_id", movieID)
	var result MovieDetail
	if err := c.get("/movie/"+strconv.Itoa(movieID), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetWatchProviders fetches the per-region watch provider map for one movie.
func (c *Client) GetWatchProviders(movieID int) (map[string]RegionProviders, error) {
	slog.Debug("fetching TMDB watch providers", "movie_id", movieID)
	var result ProvidersResponse
	if err := c.get("/movie/"+strconv.Itoa(movieID)+"/watch/providers", nil, &result); err != nil {
		return nil, err
	}
	if result.Results == nil {
		return map[string]RegionProviders{}, nil
	}
	return result.Results, nil
}

// GetGenres fetches all movie genres.
func (c *Client) GetGenres(language string) ([]Genre, error) {
	params := url.Values{}
	params.Set("language", language)

	slog.Debug("fetching TMDB genres")
	var result GenreListResponse
	if err := c.get("/genre/movie/list", params, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}

// GetRegions fetches all watch-provider regions, priority regions first and
// the rest sorted by English name.
func (c *Client) GetRegions() ([]Region, error) {
	slog.Debug("fetching TMDB regions")
	var result RegionListResponse
	if err := c.get("/watch/providers/regions", nil, &result); err != nil {
		return nil, err
	}

	regions := result.Results
	sort.SliceStable(regions, func(i, j int) bool {
		pi, pj := regionPriority[regions[i].ISO31661], regionPriority[regions[j].ISO31661]
		if pi != pj {
			return pi
		}
		return regions[i].EnglishName < regions[j].EnglishName
	})
	return regions, nil
}

// GetConfiguration fetches the API configuration (image base URLs).
func (c *Client) GetConfiguration() (*Configuration, error) {
	slog.Debug("fetching TMDB configuration")
	var result Configuration
	if err := c.get("/configuration", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return &AuthError{Reason: "no API key configured"}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	resp, err := c.http.Get(c.baseURL + path + "?" + params.Encode())
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
