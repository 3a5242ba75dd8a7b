package handlers

import (
	"net/http"
	"strconv"

	"github.com/hvaillant/cinewatch/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// CatalogHandler proxies catalog metadata queries to TMDB, reshaping the
// upstream responses for the frontend.
type CatalogHandler struct {
	catalog *tmdb.Client
	logger  *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *tmdb.Client, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Trending handles GET /api/trending?type=all|movie|tv&page=N
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "all"
	}

	resp, err := h.catalog.Trending(r.Context(), mediaType, pageParam(r))
	if err != nil {
		h.fail(w, err, "Failed to fetch trending content")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/search?q=...&page=N
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing q parameter"})
		return
	}

	resp, err := h.catalog.Search(r.Context(), query, pageParam(r))
	if err != nil {
		h.fail(w, err, "Failed to search")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Genre handles GET /api/genre?type=movie|tv&id=N&page=N
func (h *CatalogHandler) Genre(w http.ResponseWriter, r *http.Request) {
	genreID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing or invalid id parameter"})
		return
	}
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}

	resp, err := h.catalog.DiscoverByGenre(r.Context(), mediaType, genreID, pageParam(r))
	if err != nil {
		h.fail(w, err, "Failed to fetch genre content")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TopRated handles GET /api/top-rated-combined
func (h *CatalogHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalog.TopRatedCombined(r.Context(), 10)
	if err != nil {
		h.fail(w, err, "Failed to fetch top rated content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// KDramas handles GET /api/kdramas?page=N&limit=N
func (h *CatalogHandler) KDramas(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}

	results, err := h.catalog.KDramas(r.Context(), pageParam(r), limit)
	if err != nil {
		h.fail(w, err, "Failed to fetch k-dramas")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// Recent handles GET /api/recently-added?type=movie|tv&page=N
func (h *CatalogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}

	resp, err := h.catalog.Recent(r.Context(), mediaType, pageParam(r))
	if err != nil {
		h.fail(w, err, "Failed to fetch recent content")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Related handles GET /api/related?type=movie|tv&id=N
func (h *CatalogHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing or invalid id parameter"})
		return
	}
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}

	resp, err := h.catalog.Related(r.Context(), mediaType, id)
	if err != nil {
		h.fail(w, err, "Failed to fetch related content")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Details handles GET /api/media?type=movie|tv&id=N
func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing or invalid id parameter"})
		return
	}
	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}

	movie, err := h.catalog.Details(r.Context(), mediaType, id)
	if err != nil {
		h.fail(w, err, "Failed to fetch media details")
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (h *CatalogHandler) fail(w http.ResponseWriter, err error, message string) {
	h.logger.WithError(err).Error(message)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
