package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"tmdb-movie-explorer/internal/models"
	"tmdb-movie-explorer/internal/service"
	"tmdb-movie-explorer/internal/session"
	"tmdb-movie-explorer/internal/tmdb"
)

// SessionHeader carries the session id. Requests without one (or with an
// expired one) get a fresh id echoed back in the response.
const SessionHeader = "X-Session-ID"

const sessionLocal = "session_id"

// DefaultRegion is used for provider lookups when none is given.
const DefaultRegion = "US"

// MovieHandler handles HTTP requests for movie browsing.
type MovieHandler struct {
	svc      *service.BrowseService
	sessions *session.Store
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.BrowseService, sessions *session.Store) *MovieHandler {
	return &MovieHandler{svc: svc, sessions: sessions}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WithSession resolves the request's session and echoes its id.
func (h *MovieHandler) WithSession(c fiber.Ctx) error {
	id := h.sessions.Ensure(c.Get(SessionHeader))
	c.Locals(sessionLocal, id)
	c.Set(SessionHeader, id)
	return c.Next()
}

func sessionID(c fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}

// Health returns service health status and whether the configured TMDB
// credential is usable.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	upstream := "ok"
	if err := h.svc.CheckCredentials(c.Context()); err != nil {
		upstream = "unavailable"
		var authErr *tmdb.AuthError
		if errors.As(err, &authErr) {
			upstream = "unconfigured"
		}
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-explorer",
		"tmdb":    upstream,
	})
}

// BrowseMovies returns one display page of search or discover results.
// @Summary Browse movies
// @Tags movies
// @Produce json
// @Param query query string false "Keyword (empty selects discover mode)"
// @Param page query int false "Display page number" default(1)
// @Param language query string false "Language tag" default(en-US)
// @Param genres query string false "Comma-joined genre ids"
// @Param year query int false "Primary release year"
// @Param region query string false "Region code"
// @Param sort_by query string false "Discover sort key" default(popularity.desc)
// @Param vote_gte query number false "Minimum vote average"
// @Param vote_lte query number false "Maximum vote average"
// @Param runtime_gte query int false "Minimum runtime (min)"
// @Param runtime_lte query int false "Maximum runtime (min)"
// @Param original_language query string false "Original language code"
// @Success 200 {object} models.WindowResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) BrowseMovies(c fiber.Ctx) error {
	params := models.BrowseParams{
		Query:            c.Query("query"),
		Page:             fiber.Query(c, "page", 1),
		Language:         c.Query("language", models.DefaultLanguage),
		Genres:           c.Query("genres"),
		Year:             fiber.Query(c, "year", 0),
		Region:           c.Query("region"),
		SortBy:           c.Query("sort_by", tmdb.DefaultSort),
		IncludeAdult:     fiber.Query(c, "include_adult", false),
		VoteGTE:          fiber.Query(c, "vote_gte", 0.0),
		VoteLTE:          fiber.Query(c, "vote_lte", 0.0),
		RuntimeGTE:       fiber.Query(c, "runtime_gte", 0),
		RuntimeLTE:       fiber.Query(c, "runtime_lte", 0),
		OriginalLanguage: c.Query("original_language"),
	}

	result, err := h.svc.Browse(c.Context(), params)
	if err != nil {
		return respondError(c, "failed to browse movies", err)
	}

	sid := sessionID(c)
	for i := range result.Data {
		result.Data[i].Favorite = h.sessions.IsFavorite(sid, result.Data[i].ID)
	}
	return c.JSON(result)
}

// GetMovieDetail returns the details-drawer payload for a single movie.
// @Summary Get movie detail
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Param language query string false "Language tag" default(en-US)
// @Param region query string false "Region code for certification"
// @Success 200 {object} models.MovieDetail
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieDetail(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid movie ID",
		})
	}

	language := c.Query("language", models.DefaultLanguage)
	region := c.Query("region")

	detail, err := h.svc.GetMovieDetail(c.Context(), id, language, region)
	if err != nil {
		return respondError(c, "failed to retrieve movie details", err)
	}

	detail.Favorite = h.sessions.IsFavorite(sessionID(c), detail.ID)
	return c.JSON(detail)
}

// GetWatchProviders returns the watch providers for a movie in one region.
// @Summary Get watch providers
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Param region query string false "Region code" default(US)
// @Success 200 {object} models.WatchProviders
// @Router /movies/{id}/providers [get]
func (h *MovieHandler) GetWatchProviders(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid movie ID",
		})
	}

	providers, err := h.svc.GetWatchProviders(c.Context(), id, c.Query("region", DefaultRegion))
	if err != nil {
		return respondError(c, "failed to retrieve watch providers", err)
	}
	return c.JSON(providers)
}

// GetGenres returns the genre reference list.
// @Summary List genres
// @Tags reference
// @Produce json
// @Success 200 {array} models.Genre
// @Router /genres [get]
func (h *MovieHandler) GetGenres(c fiber.Ctx) error {
	genres, err := h.svc.GetGenres(c.Context(), c.Query("language", models.DefaultLanguage))
	if err != nil {
		return respondError(c, "failed to retrieve genres", err)
	}
	return c.JSON(genres)
}

// GetRegions returns the watch-provider region reference list.
// @Summary List regions
// @Tags reference
// @Produce json
// @Success 200 {array} models.Region
// @Router /regions [get]
func (h *MovieHandler) GetRegions(c fiber.Ctx) error {
	regions, err := h.svc.GetRegions(c.Context())
	if err != nil {
		return respondError(c, "failed to retrieve regions", err)
	}
	return c.JSON(regions)
}

// ListFavorites returns the session's favorites resolved to detail records.
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Success 200 {object} models.FavoritesResponse
// @Router /favorites [get]
func (h *MovieHandler) ListFavorites(c fiber.Ctx) error {
	ids := h.sessions.Favorites(sessionID(c))
	data := h.svc.ResolveFavorites(
		c.Context(), ids,
		c.Query("language", models.DefaultLanguage),
		c.Query("region"),
	)
	return c.JSON(models.FavoritesResponse{Count: len(data), Data: data})
}

// AddFavorite marks a movie as a session favorite.
// @Summary Add favorite
// @Tags favorites
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} map[string]interface{}
// @Router /favorites/{id} [put]
func (h *MovieHandler) AddFavorite(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid movie ID",
		})
	}
	h.sessions.AddFavorite(sessionID(c), id)
	return c.JSON(fiber.Map{"id": id, "favorite": true})
}

// RemoveFavorite clears a session favorite.
// @Summary Remove favorite
// @Tags favorites
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} map[string]interface{}
// @Router /favorites/{id} [delete]
func (h *MovieHandler) RemoveFavorite(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid movie ID",
		})
	}
	h.sessions.RemoveFavorite(sessionID(c), id)
	return c.JSON(fiber.Map{"id": id, "favorite": false})
}

// respondError maps the upstream error taxonomy onto HTTP statuses: auth
// problems are user-correctable (401), upstream rejections are surfaced
// verbatim, and network failures read as a gateway timeout.
func respondError(c fiber.Ctx, msg string, err error) error {
	var authErr *tmdb.AuthError
	var upErr *tmdb.UpstreamError
	var netErr *tmdb.NetworkError

	switch {
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "TMDB API key is missing; set TMDB_V3_KEY",
		})
	case errors.As(err, &upErr):
		status := fiber.StatusBadGateway
		if upErr.Status == fiber.StatusUnauthorized || upErr.Status == fiber.StatusNotFound {
			status = upErr.Status
		}
		return c.Status(status).JSON(ErrorResponse{Error: upErr.Error()})
	case errors.As(err, &netErr):
		return c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{
			Error: "TMDB is unreachable, try again",
		})
	}

	slog.Error(msg, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msg})
}
