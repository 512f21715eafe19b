package service

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"tmdb-movie-explorer/internal/browse"
	"tmdb-movie-explorer/internal/cache"
	"tmdb-movie-explorer/internal/config"
	"tmdb-movie-explorer/internal/models"
	"tmdb-movie-explorer/internal/tmdb"
)

const topCastLimit = 6

// BrowseService handles business logic for movie browsing. Every upstream
// lookup is memoized by its full call signature; listing windows are never
// cached directly, only the upstream pages they are sliced from.
type BrowseService struct {
	tmdb     *tmdb.Client
	cache    *cache.Cache
	ttl      config.CacheConfig
	pageSize int
}

// NewBrowseService creates a new BrowseService.
func NewBrowseService(client *tmdb.Client, c *cache.Cache, ttl config.CacheConfig, pageSize int) *BrowseService {
	return &BrowseService{
		tmdb:     client,
		cache:    c,
		ttl:      ttl,
		pageSize: pageSize,
	}
}

// PageSize returns the display page size the service slices windows to.
func (s *BrowseService) PageSize() int {
	return s.pageSize
}

// Browse resolves one display page of search or discover results. A fetch
// failure aborts the whole window; no partial result is returned.
func (s *BrowseService) Browse(ctx context.Context, params models.BrowseParams) (*models.WindowResponse, error) {
	params.Validate()

	win, err := browse.ResolveWindow(params.Page, s.pageSize, tmdb.PageSize, s.pageFetcher(ctx, params))
	if err != nil {
		return nil, err
	}

	imageBase := s.imageBase(ctx)
	items := make([]models.MovieListItem, 0, len(win.Items))
	for _, m := range win.Items {
		items = append(items, models.MovieListItem{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
			Overview:    m.Overview,
			PosterURL:   posterURL(imageBase, m.PosterPath, "w342"),
			GenreIDs:    m.GenreIDs,
		})
	}

	return &models.WindowResponse{
		Page:         params.Page,
		PageSize:     s.pageSize,
		TotalPages:   win.TotalPages,
		TotalResults: win.TotalItems,
		Data:         items,
	}, nil
}

// pageFetcher returns a memoized upstream page fetcher for the request:
// keyword search when a query is present, filtered discover otherwise.
func (s *BrowseService) pageFetcher(ctx context.Context, params models.BrowseParams) browse.PageFetcher {
	if params.Query != "" {
		return func(page int) (*tmdb.Page, error) {
			kv := url.Values{}
			kv.Set("query", params.Query)
			kv.Set("language", params.Language)
			kv.Set("include_adult", "false")
			kv.Set("page", strconv.Itoa(page))

			key := cache.Key("/search/movie", kv)
			return cache.Memoize(ctx, s.cache, key, s.ttl.ResultsTTL, func() (*tmdb.Page, error) {
				return s.tmdb.SearchMovies(params.Query, page, params.Language)
			})
		}
	}

	filters := params.Filters()
	return func(page int) (*tmdb.Page, error) {
		kv := filters.Values()
		kv.Set("language", params.Language)
		kv.Set("page", strconv.Itoa(page))

		key := cache.Key("/discover/movie", kv)
		return cache.Memoize(ctx, s.cache, key, s.ttl.ResultsTTL, func() (*tmdb.Page, error) {
			return s.tmdb.DiscoverMovies(filters, page, params.Language)
		})
	}
}

// GetMovieDetail returns the details-drawer payload for one movie. The
// certification is resolved for the given region when one is set.
func (s *BrowseService) GetMovieDetail(ctx context.Context, movieID int, language, region string) (*models.MovieDetail, error) {
	detail, err := s.fetchDetail(ctx, movieID, language)
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(detail.Genres))
	for _, g := range detail.Genres {
		genres = append(genres, g.Name)
	}

	cast := make([]models.CastMember, 0, topCastLimit)
	for _, c := range detail.Credits.Cast {
		if len(cast) == topCastLimit {
			break
		}
		cast = append(cast, models.CastMember{Name: c.Name, Character: c.Character})
	}

	imageBase := s.imageBase(ctx)
	return &models.MovieDetail{
		ID:            detail.ID,
		Title:         detail.Title,
		Overview:      detail.Overview,
		ReleaseDate:   detail.ReleaseDate,
		Runtime:       detail.Runtime,
		VoteAverage:   detail.VoteAverage,
		Genres:        genres,
		Language:      detail.OriginalLanguage,
		PosterURL:     posterURL(imageBase, detail.PosterPath, "w500"),
		BackdropURL:   posterURL(imageBase, detail.BackdropPath, "w780"),
		TrailerURL:    trailerURL(detail.Videos.Results),
		Certification: certification(detail.ReleaseDates.Results, region),
		Cast:          cast,
		TMDBURL:       "https://www.themoviedb.org/movie/" + strconv.Itoa(detail.ID),
	}, nil
}

func (s *BrowseService) fetchDetail(ctx context.Context, movieID int, language string) (*tmdb.MovieDetail, error) {
	kv := url.Values{}
	kv.Set("language", language)
	kv.Set("append_to_response", "videos,credits,release_dates")

	key := cache.Key("/movie/"+strconv.Itoa(movieID), kv)
	return cache.Memoize(ctx, s.cache, key, s.ttl.DetailTTL, func() (*tmdb.MovieDetail, error) {
		return s.tmdb.GetMovieDetail(movieID, language)
	})
}

// GetWatchProviders returns the watch providers for one movie in one region.
// An unknown region yields an empty listing, not an error.
func (s *BrowseService) GetWatchProviders(ctx context.Context, movieID int, region string) (*models.WatchProviders, error) {
	key := cache.Key("/movie/"+strconv.Itoa(movieID)+"/watch/providers", nil)
	results, err := cache.Memoize(ctx, s.cache, key, s.ttl.DetailTTL, func() (map[string]tmdb.RegionProviders, error) {
		return s.tmdb.GetWatchProviders(movieID)
	})
	if err != nil {
		return nil, err
	}

	rp, ok := results[region]
	if !ok {
		return &models.WatchProviders{Region: region}, nil
	}
	return &models.WatchProviders{
		Region:   region,
		Link:     rp.Link,
		Flatrate: providerNames(rp.Flatrate),
		Rent:     providerNames(rp.Rent),
		Buy:      providerNames(rp.Buy),
		Ads:      providerNames(rp.Ads),
		Free:     providerNames(rp.Free),
	}, nil
}

// GetGenres returns the genre reference list.
func (s *BrowseService) GetGenres(ctx context.Context, language string) ([]models.Genre, error) {
	kv := url.Values{}
	kv.Set("language", language)

	key := cache.Key("/genre/movie/list", kv)
	genres, err := cache.Memoize(ctx, s.cache, key, s.ttl.ReferenceTTL, func() ([]tmdb.Genre, error) {
		return s.tmdb.GetGenres(language)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, models.Genre{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// GetRegions returns the watch-provider region reference list.
func (s *BrowseService) GetRegions(ctx context.Context) ([]models.Region, error) {
	key := cache.Key("/watch/providers/regions", nil)
	regions, err := cache.Memoize(ctx, s.cache, key, s.ttl.ReferenceTTL, func() ([]tmdb.Region, error) {
		return s.tmdb.GetRegions()
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Region, 0, len(regions))
	for _, r := range regions {
		out = append(out, models.Region{Code: r.ISO31661, Name: r.EnglishName})
	}
	return out, nil
}

// ResolveFavorites resolves favorite ids to detail records. Ids whose
// lookup fails are skipped rather than failing the whole listing.
func (s *BrowseService) ResolveFavorites(ctx context.Context, movieIDs []int, language, region string) []models.MovieDetail {
	out := make([]models.MovieDetail, 0, len(movieIDs))
	for _, id := range movieIDs {
		detail, err := s.GetMovieDetail(ctx, id, language, region)
		if err != nil {
			continue
		}
		detail.Favorite = true
		out = append(out, *detail)
	}
	return out
}

// CheckCredentials performs a cheap configuration lookup to verify the
// configured API key is usable.
func (s *BrowseService) CheckCredentials(ctx context.Context) error {
	_, err := s.fetchConfiguration(ctx)
	return err
}

func (s *BrowseService) fetchConfiguration(ctx context.Context) (*tmdb.Configuration, error) {
	key := cache.Key("/configuration", nil)
	return cache.Memoize(ctx, s.cache, key, s.ttl.ReferenceTTL, func() (*tmdb.Configuration, error) {
		return s.tmdb.GetConfiguration()
	})
}

// imageBase returns the image base URL from the configuration endpoint,
// falling back to the well-known default when the lookup fails.
func (s *BrowseService) imageBase(ctx context.Context) string {
	conf, err := s.fetchConfiguration(ctx)
	if err != nil || conf.Images.SecureBaseURL == "" {
		return models.FallbackImageBase
	}
	return conf.Images.SecureBaseURL
}

func posterURL(base, path, size string) string {
	if path == "" {
		return models.FallbackPosterURL
	}
	return base + size + path
}

// trailerURL returns the first YouTube trailer or teaser, if any.
func trailerURL(videos []tmdb.Video) string {
	for _, v := range videos {
		if v.Site == "YouTube" && (v.Type == "Trailer" || v.Type == "Teaser") {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return ""
}

// certification returns the first non-empty certification for the region.
func certification(blocks []tmdb.RegionReleaseDates, region string) string {
	if region == "" {
		return ""
	}
	for _, block := range blocks {
		if block.ISO31661 != region {
			continue
		}
		for _, rel := range block.ReleaseDates {
			if rel.Certification != "" {
				return rel.Certification
			}
		}
	}
	return ""
}

// providerNames deduplicates and sorts provider names for one offer group.
func providerNames(providers []tmdb.Provider) []string {
	if len(providers) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(providers))
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		if _, ok := seen[p.ProviderName]; ok {
			continue
		}
		seen[p.ProviderName] = struct{}{}
		names = append(names, p.ProviderName)
	}
	sort.Strings(names)
	return names
}
