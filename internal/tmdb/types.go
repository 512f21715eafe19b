package tmdb

// ---- TMDB Response Types ----

// Movie is one record from a search or discover results page.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

// Page is one fixed-size batch of listing results. TMDB pages hold at most
// 20 records; TotalResults and TotalPages are trusted verbatim.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalResults int     `json:"total_results"`
	TotalPages   int     `json:"total_pages"`
}

// PageSize is the fixed, non-configurable TMDB listing page size.
const PageSize = 20

// MovieDetail is the extended record for a single movie, with videos,
// credits and release dates appended in the same response.
type MovieDetail struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	OriginalLanguage string  `json:"original_language"`
	Genres           []Genre `json:"genres"`

	Videos       VideoList        `json:"videos"`
	Credits      Credits          `json:"credits"`
	ReleaseDates ReleaseDatesList `json:"release_dates"`
}

// VideoList wraps the appended videos block.
type VideoList struct {
	Results []Video `json:"results"`
}

// Video is one trailer/teaser/clip entry.
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// Credits wraps the appended credits block.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// CastMember is one cast credit, ordered by billing.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// ReleaseDatesList wraps the appended release_dates block.
type ReleaseDatesList struct {
	Results []RegionReleaseDates `json:"results"`
}

// RegionReleaseDates holds the release entries for one region.
type RegionReleaseDates struct {
	ISO31661     string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

// ReleaseDate is one dated release entry; Certification may be empty.
type ReleaseDate struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
}

// Genre is a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the genre/movie/list response.
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// Region is one watch-provider region.
type Region struct {
	ISO31661    string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name"`
}

// RegionListResponse is the watch/providers/regions response.
type RegionListResponse struct {
	Results []Region `json:"results"`
}

// ProvidersResponse is the per-movie watch providers response, keyed by
// region code.
type ProvidersResponse struct {
	ID      int                        `json:"id"`
	Results map[string]RegionProviders `json:"results"`
}

// RegionProviders lists providers for one region, grouped by offer type.
type RegionProviders struct {
	Link     string     `json:"link"`
	Flatrate []Provider `json:"flatrate"`
	Rent     []Provider `json:"rent"`
	Buy      []Provider `json:"buy"`
	Ads      []Provider `json:"ads"`
	Free     []Provider `json:"free"`
}

// Provider is one watch provider entry.
type Provider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// Configuration is the TMDB configuration response; only the image block
// is used.
type Configuration struct {
	Images ImageConfiguration `json:"images"`
}

// ImageConfiguration holds the image base URL and available sizes.
type ImageConfiguration struct {
	SecureBaseURL string   `json:"secure_base_url"`
	PosterSizes   []string `json:"poster_sizes"`
}
