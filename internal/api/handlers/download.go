package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hvaillant/cinewatch/internal/match"
	"github.com/hvaillant/cinewatch/internal/services/fileindex"
	"github.com/sirupsen/logrus"
)

// DownloadHandler answers download-check queries: given a catalog title and
// optional release year it matches the external file index against the title
// and reports any plausible downloads.
type DownloadHandler struct {
	files  *fileindex.Client
	logger *logrus.Logger
}

// NewDownloadHandler creates a new download-check handler
func NewDownloadHandler(files *fileindex.Client, logger *logrus.Logger) *DownloadHandler {
	return &DownloadHandler{
		files:  files,
		logger: logger,
	}
}

// DownloadOption is one matched file, shaped for the client: display
// metadata is pre-computed so the frontend renders it verbatim.
type DownloadOption struct {
	FileName      string `json:"fileName"`
	Link          string `json:"link"`
	FileSize      int64  `json:"fileSize"`
	FormattedSize string `json:"formattedSize"`
	Quality       string `json:"quality"`
	Codec         string `json:"codec"`
	Duration      int    `json:"duration"`
}

type downloadResponse struct {
	Available bool             `json:"available"`
	Downloads []DownloadOption `json:"downloads,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// ServeHTTP handles GET /api/download-check?title=...&year=...
//
// Absence of a match and an unreachable file index both answer
// available:false with HTTP 200; only the latter carries an error field.
// Most catalog titles have no download, so neither is an error condition
// the client should render as a failure page.
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.WithField("panic", rec).Error("Download check panicked")
			writeJSON(w, http.StatusInternalServerError, downloadResponse{
				Available: false,
				Error:     "Failed to check downloads",
			})
		}
	}()

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing title parameter"})
		return
	}

	// An unparsable year is treated as absent rather than rejected.
	year := 0
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		if parsed, err := strconv.Atoi(yearParam); err == nil {
			year = parsed
		}
	}

	files, err := h.files.ListFiles(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("File index unavailable")
		writeJSON(w, http.StatusOK, downloadResponse{
			Available: false,
			Error:     "Download server unavailable",
		})
		return
	}

	candidates := make([]match.Candidate, 0, len(files))
	for _, f := range files {
		candidates = append(candidates, match.Candidate{
			FileName: f.FileName,
			Size:     f.FileSize,
			Duration: f.Duration,
			Link:     f.TelegramLink,
		})
	}

	matches := match.FindMatches(title, year, candidates)
	if len(matches) == 0 {
		h.logger.WithFields(logrus.Fields{
			"title": title,
			"year":  year,
		}).Debug("No matching download")
		writeJSON(w, http.StatusOK, downloadResponse{Available: false})
		return
	}

	options := make([]DownloadOption, 0, len(matches))
	for _, m := range matches {
		options = append(options, DownloadOption{
			FileName:      m.FileName,
			Link:          m.Link,
			FileSize:      m.Size,
			FormattedSize: match.FormatFileSize(m.Size),
			Quality:       match.ExtractQuality(m.FileName),
			Codec:         match.ExtractCodec(m.FileName),
			Duration:      m.Duration,
		})
	}

	h.logger.WithFields(logrus.Fields{
		"title": title,
		"count": len(options),
	}).Debug("Matching downloads found")

	writeJSON(w, http.StatusOK, downloadResponse{
		Available: true,
		Downloads: options,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
