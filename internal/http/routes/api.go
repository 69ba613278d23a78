package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/fitcoach/internal/coach"
	"github.com/briangreenhill/fitcoach/internal/imagegen"
	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/speech"
)

// handleGeneratePlan is the JSON endpoint. Any failure, including a body that
// does not decode, is a 500 with an error message.
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var p plan.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Error().Err(err).Msg("decode profile")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sec, err := s.Planner.Generate(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("error in generate-fitness-plan")
		writeError(w, http.StatusInternalServerError, coach.PublicMessage(err))
		return
	}

	s.archive(r, uuid.New(), p, sec)
	writeJSON(w, http.StatusOK, sec)
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	if s.Images == nil {
		writeError(w, http.StatusServiceUnavailable, "image generation not configured")
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	url, err := s.Images.Generate(r.Context(), req.Prompt)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("generate image")
		status := http.StatusInternalServerError
		if errors.Is(err, imagegen.ErrEmptyPrompt) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{ImageURL: url})
}

type speechRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.speak(w, r, req.Category, req.Text)
}

// speak writes synthesized audio, or a JSON error.
func (s *Server) speak(w http.ResponseWriter, r *http.Request, category, text string) {
	if s.Speech == nil {
		writeError(w, http.StatusServiceUnavailable, "speech not configured")
		return
	}
	cat, err := speech.ParseCategory(category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	audio, err := s.Speech.Speak(r.Context(), cat, text)
	switch {
	case errors.Is(err, speech.ErrEmptyText):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, speech.ErrInterrupted):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("category", string(cat)).Msg("speech failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
