package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/poiesic/callsearch/assistant"
	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/render"
	"github.com/poiesic/callsearch/search"
)

type searchResponse struct {
	State       string  `json:"state"`
	ResultsHTML string  `json:"resultsHTML"`
	Transcripts int     `json:"transcripts"`
	Matches     int     `json:"matches"`
	ElapsedMs   float64 `json:"elapsedMs"`
}

type transcriptResponse struct {
	Name       string `json:"name"`
	Utterances int    `json:"utterances"`
	BodyHTML   string `json:"bodyHTML"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer              string `json:"answer"`
	RawOutput           string `json:"raw_output"`
	TranscriptsAnalyzed int    `json:"transcripts_analyzed"`
	TotalTranscripts    int    `json:"total_transcripts"`
}

type statusResponse struct {
	Status            string `json:"status"`
	TranscriptsLoaded int    `json:"transcripts_loaded"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, render.PageData{TranscriptCount: s.corpus.Len()}); err != nil {
		s.logger.Error("rendering page", "err", err)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := core.SpeakerFilterFromString(r.URL.Query().Get("speaker"))
	caseSensitive := r.URL.Query().Get("case") == "1"

	result, err := s.searcher.Search(r.Context(), query, filter, caseSensitive)
	if errors.Is(err, search.ErrEmptyQuery) {
		// Defined no-op state, not a failure.
		writeJSON(w, http.StatusOK, searchResponse{
			State:       "empty",
			ResultsHTML: render.EmptyStateHTML(s.corpus.Len()),
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	renderer, err := render.NewRenderer(search.ParseQuery(query), caseSensitive)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		State:       "ok",
		ResultsHTML: renderer.Results(result),
		Transcripts: result.Transcripts,
		Matches:     result.Total,
		ElapsedMs:   float64(result.Elapsed.Microseconds()) / 1000.0,
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	transcript := s.corpus.Get(key)
	if transcript == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "transcript not found"})
		return
	}

	query := r.URL.Query().Get("q")
	caseSensitive := r.URL.Query().Get("case") == "1"

	renderer, err := render.NewRenderer(search.ParseQuery(query), caseSensitive)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		Name:       transcript.Name,
		Utterances: transcript.UtteranceCount(),
		BodyHTML:   renderer.Transcript(transcript),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:            "ok",
		TranscriptsLoaded: s.corpus.Len(),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "assistant not configured"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)
	logger.Info("ask received", "question_chars", len(req.Question))

	answer, err := s.assistant.Ask(r.Context(), req.Question)
	switch {
	case errors.Is(err, assistant.ErrQuestionRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no question provided"})
		return
	case errors.Is(err, assistant.ErrNoTranscripts):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "no transcripts loaded"})
		return
	case errors.Is(err, assistant.ErrJobTimeout):
		logger.Error("ask timed out", "err", err)
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "generation timed out"})
		return
	case err != nil:
		logger.Error("ask failed", "err", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "generation failed"})
		return
	}

	logger.Info("ask answered",
		"transcripts_analyzed", answer.TranscriptsAnalyzed,
		"raw_chars", len(answer.Raw))

	writeJSON(w, http.StatusOK, askResponse{
		Answer:              answer.HTML,
		RawOutput:           answer.Raw,
		TranscriptsAnalyzed: answer.TranscriptsAnalyzed,
		TotalTranscripts:    answer.TotalTranscripts,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
