package tmdb

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

func emptyPage() Page {
	return Page{Page: 1, Results: []Movie{}, TotalResults: 0, TotalPages: 1}
}

func TestMissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(emptyPage())
	}))
	defer srv.Close()

	c := NewClient("", srv.URL)
	_, err := c.SearchMovies("matrix", 1, "en-US")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("expected no network call without a key, got %d", hits.Load())
	}
}

func TestNon2xxSurfacesAsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", srv.URL)
	_, err := c.SearchMovies("matrix", 1, "en-US")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", upErr.Status)
	}
	if upErr.Body == "" {
		t.Error("expected response body to be carried verbatim")
	}
}

func TestConnectionFailureSurfacesAsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("key", srv.URL)
	_, err := c.SearchMovies("matrix", 1, "en-US")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func captureQuery(t *testing.T, call func(c *Client) error) url.Values {
	t.Helper()
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(emptyPage())
	}))
	defer srv.Close()

	if err := call(NewClient("test-key", srv.URL)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestSearchParameters(t *testing.T) {
	q := captureQuery(t, func(c *Client) error {
		_, err := c.SearchMovies("the matrix", 3, "ko-KR")
		return err
	})

	for key, want := range map[string]string{
		"api_key":       "test-key",
		"query":         "the matrix",
		"page":          "3",
		"language":      "ko-KR",
		"include_adult": "false",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("param %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestDiscoverFilterSerialization(t *testing.T) {
	filters := Filters{
		Genres:           []int{28, 12},
		Year:             2020,
		Region:           "KR",
		SortBy:           "vote_average.desc",
		IncludeAdult:     true,
		VoteGTE:          6.5,
		VoteLTE:          9,
		RuntimeGTE:       80,
		RuntimeLTE:       240,
		OriginalLanguage: "ko",
	}
	q := captureQuery(t, func(c *Client) error {
		_, err := c.DiscoverMovies(filters, 2, "en-US")
		return err
	})

	for key, want := range map[string]string{
		"with_genres":            "28,12",
		"primary_release_year":   "2020",
		"region":                 "KR",
		"sort_by":                "vote_average.desc",
		"include_adult":          "true",
		"vote_average.gte":       "6.5",
		"vote_average.lte":       "9",
		"with_runtime.gte":       "80",
		"with_runtime.lte":       "240",
		"with_original_language": "ko",
		"page":                   "2",
		"language":               "en-US",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("param %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestDiscoverOmitsAbsentFilters(t *testing.T) {
	q := captureQuery(t, func(c *Client) error {
		_, err := c.DiscoverMovies(Filters{}, 1, "en-US")
		return err
	})

	for _, key := range []string{
		"with_genres", "primary_release_year", "region",
		"vote_average.gte", "vote_average.lte",
		"with_runtime.gte", "with_runtime.lte", "with_original_language",
	} {
		if q.Has(key) {
			t.Errorf("absent filter %s must be omitted, got %q", key, q.Get(key))
		}
	}
	if got := q.Get("sort_by"); got != DefaultSort {
		t.Errorf("expected default sort %q, got %q", DefaultSort, got)
	}
}

func TestMovieDetailRequestsAppendedBlocks(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(MovieDetail{ID: 603, Title: "The Matrix"})
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	detail, err := c.GetMovieDetail(603, "en-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/movie/603" {
		t.Errorf("expected path /movie/603, got %s", gotPath)
	}
	if got := gotQuery.Get("append_to_response"); got != "videos,credits,release_dates" {
		t.Errorf("expected appended blocks, got %q", got)
	}
	if detail.Title != "The Matrix" {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestRegionsSortedPriorityFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(RegionListResponse{Results: []Region{
			{ISO31661: "AR", EnglishName: "Argentina"},
			{ISO31661: "KR", EnglishName: "South Korea"},
			{ISO31661: "BR", EnglishName: "Brazil"},
			{ISO31661: "US", EnglishName: "United States of America"},
		}})
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	regions, err := c.GetRegions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, len(regions))
	for i, r := range regions {
		got[i] = r.ISO31661
	}
	want := []string{"KR", "US", "AR", "BR"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestWatchProvidersNilResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 603}`))
	}))
	defer srv.Close()

	c := NewClient("key", srv.URL)
	providers, err := c.GetWatchProviders(603)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if providers == nil {
		t.Error("expected empty map for missing results, got nil")
	}
}
