package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hvaillant/cinewatch/internal/config"
	"github.com/hvaillant/cinewatch/internal/services/fileindex"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newDownloadHandler(t *testing.T, upstream http.Handler) *DownloadHandler {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	files, err := fileindex.NewClient(&config.Config{
		DownloadServerURL: server.URL,
		DownloadEndpoint:  "/allvideos",
		FileIndexCacheTTL: time.Minute,
	}, testLogger())
	if err != nil {
		t.Fatalf("fileindex.NewClient failed: %v", err)
	}

	return NewDownloadHandler(files, testLogger())
}

func checkDownloads(t *testing.T, handler *DownloadHandler, target string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	body := make(map[string]json.RawMessage)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return rec.Code, body
}

func TestDownloadCheckMatch(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"file_name": "unrelated.show.s01e01.mkv", "file_size": 100, "telegram_link": "https://t.me/x/0"},
			{"file_name": "Inception.2010.2160p.HEVC.mkv", "file_size": 1320702443, "duration": 8880, "telegram_link": "https://t.me/x/1"}
		]}`))
	}))

	status, body := checkDownloads(t, handler, "/api/download-check?title=Inception&year=2010")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var available bool
	if err := json.Unmarshal(body["available"], &available); err != nil || !available {
		t.Fatalf("expected available:true, got %s", body["available"])
	}

	var downloads []DownloadOption
	if err := json.Unmarshal(body["downloads"], &downloads); err != nil {
		t.Fatalf("failed to decode downloads: %v", err)
	}
	if len(downloads) != 1 {
		t.Fatalf("expected 1 download, got %d", len(downloads))
	}

	option := downloads[0]
	if option.FileName != "Inception.2010.2160p.HEVC.mkv" {
		t.Errorf("fileName mismatch: %s", option.FileName)
	}
	if option.Link != "https://t.me/x/1" {
		t.Errorf("link mismatch: %s", option.Link)
	}
	if option.FormattedSize != "1.23 GB" {
		t.Errorf("formattedSize mismatch: %s", option.FormattedSize)
	}
	if option.Quality != "2160P" {
		t.Errorf("quality mismatch: %s", option.Quality)
	}
	if option.Codec != "HEVC" {
		t.Errorf("codec mismatch: %s", option.Codec)
	}
	if option.Duration != 8880 {
		t.Errorf("duration mismatch: %d", option.Duration)
	}
}

func TestDownloadCheckNoMatch(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [
			{"file_name": "totally.unrelated.film.mkv"},
			{"file_name": "another.different.thing.mp4"},
			{"file_name": "some.random.show.s01e01.mkv"}
		]}`))
	}))

	status, body := checkDownloads(t, handler, "/api/download-check?title=Inception&year=2010")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var available bool
	if err := json.Unmarshal(body["available"], &available); err != nil || available {
		t.Errorf("expected available:false, got %s", body["available"])
	}
	if _, hasError := body["error"]; hasError {
		t.Error("no-match response must not carry an error field")
	}
}

func TestDownloadCheckEmptyCandidateList(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))

	status, body := checkDownloads(t, handler, "/api/download-check?title=Inception")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var available bool
	json.Unmarshal(body["available"], &available)
	if available {
		t.Error("expected available:false for empty upstream list")
	}
	if _, hasError := body["error"]; hasError {
		t.Error("empty list is not an upstream error")
	}
}

func TestDownloadCheckMissingTitle(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be queried without a title")
	}))

	status, body := checkDownloads(t, handler, "/api/download-check")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	var message string
	if err := json.Unmarshal(body["error"], &message); err != nil || message != "Missing title parameter" {
		t.Errorf("unexpected error message: %s", body["error"])
	}
}

func TestDownloadCheckUpstreamDown(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	status, body := checkDownloads(t, handler, "/api/download-check?title=Inception")
	if status != http.StatusOK {
		t.Fatalf("upstream failure must stay a soft failure, got %d", status)
	}

	var available bool
	json.Unmarshal(body["available"], &available)
	if available {
		t.Error("expected available:false when upstream is down")
	}

	var message string
	if err := json.Unmarshal(body["error"], &message); err != nil || message != "Download server unavailable" {
		t.Errorf("unexpected error message: %s", body["error"])
	}
}

func TestDownloadCheckInvalidYearIgnored(t *testing.T) {
	handler := newDownloadHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"file_name": "inception.mkv", "telegram_link": "https://t.me/x/1"}]}`))
	}))

	status, body := checkDownloads(t, handler, "/api/download-check?title=Inception&year=abc")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var available bool
	json.Unmarshal(body["available"], &available)
	if !available {
		t.Error("unparsable year should be treated as absent, not fatal")
	}
}
