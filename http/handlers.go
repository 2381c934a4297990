package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/shlok"
)

// Client-facing error messages.
const (
	msgInvalidIndex = "Missing or invalid index"
	msgNotFound     = "Shlok not found"
	msgInternal     = "Internal server error"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleShlok returns the verse for the index query parameter.
func (s *Server) handleShlok(w http.ResponseWriter, r *http.Request) {
	index, err := shlok.ParseIndex(r.URL.Query().Get("index"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.verses.FindVerse(r.Context(), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// etagMatches reports whether an If-None-Match header value matches etag.
// The header may list several tags, use "*", or mark tags weak with W/.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// positionResponse is the body of /api/position.
type positionResponse struct {
	Index         int            `json:"index"`
	Position      shlok.Position `json:"position"`
	ChapterLabel  string         `json:"chapterLabel"`
	ProgressLabel string         `json:"progressLabel"`
}

// handlePosition resolves the index query parameter without a store lookup.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	index, err := shlok.ParseIndex(r.URL.Query().Get("index"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pos := shlok.Resolve(index, s.chapters)
	writeJSON(w, http.StatusOK, positionResponse{
		Index:         index,
		Position:      pos,
		ChapterLabel:  pos.ChapterLabel(),
		ProgressLabel: pos.ProgressLabel(),
	})
}

// chaptersResponse is the body of /api/chapters.
type chaptersResponse struct {
	Total    int                 `json:"total"`
	Chapters []shlok.ChapterMark `json:"chapters"`
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chaptersResponse{
		Total:    shlok.CountVerses(s.chapters),
		Chapters: shlok.ChapterMarks(s.chapters),
	})
}

// writeError maps an application error onto a status code and JSON body.
// Only unexpected errors are logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch shlok.ErrorCode(err) {
	case shlok.EINVALID:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidIndex})
	case shlok.ENOTFOUND:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
