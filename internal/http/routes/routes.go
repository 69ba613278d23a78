package routes

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	appmw "github.com/briangreenhill/fitcoach/internal/http/middleware"
	"github.com/briangreenhill/fitcoach/internal/imagegen"
	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/speech"
)

// Planner turns a profile into plan sections.
type Planner interface {
	Generate(ctx context.Context, p plan.Profile) (plan.Sections, error)
}

// ImageGenerator returns an image URL for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Speaker reads text aloud for a category.
type Speaker interface {
	Speak(ctx context.Context, cat speech.Category, text string) ([]byte, error)
}

// Archiver records a finished plan outside the request.
type Archiver interface {
	Archive(ctx context.Context, planID uuid.UUID, p plan.Profile, s plan.Sections) error
}

type Server struct {
	Router   *chi.Mux
	Sess     *scs.SessionManager
	Tmpl     *template.Template
	Store    PlanStore
	Planner  Planner
	Images   ImageGenerator   // nil disables image generation
	Boards   *imagegen.Boards // per-plan image slots for the page view
	Speech   Speaker          // nil disables speech
	Archiver Archiver         // nil disables archival
	Log      zerolog.Logger
}

type ServerOptions struct {
	Sess     *scs.SessionManager
	Tmpl     *template.Template
	Planner  Planner
	Images   ImageGenerator
	Boards   *imagegen.Boards
	Speech   Speaker
	Archiver Archiver
	Logger   zerolog.Logger
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:   r,
		Sess:     opts.Sess,
		Tmpl:     opts.Tmpl,
		Store:    SessionStore{Sess: opts.Sess},
		Planner:  opts.Planner,
		Images:   opts.Images,
		Boards:   opts.Boards,
		Speech:   opts.Speech,
		Archiver: opts.Archiver,
		Log:      opts.Logger,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})

	r.Get("/", s.handleHome)
	r.Post("/plan", s.handleCreatePlan)
	r.Post("/plan/images/{key}", s.handlePlanImage)
	r.Post("/plan/speech/{category}", s.handlePlanSpeech)
	r.Post("/regenerate", s.handleRegenerate)
	r.Post("/theme", s.handleTheme)

	r.Route("/api", func(ar chi.Router) {
		ar.Use(appmw.CORS)
		ar.Post("/generate-fitness-plan", s.handleGeneratePlan)
		ar.Post("/generate-image", s.handleGenerateImage)
		ar.Post("/speech", s.handleSpeech)
	})

	return s
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render template failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// archive hands the plan to the archiver without tying it to the request.
// Failures are logged and never reach the caller.
func (s *Server) archive(r *http.Request, id uuid.UUID, p plan.Profile, sec plan.Sections) {
	if s.Archiver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
	defer cancel()
	if err := s.Archiver.Archive(ctx, id, p, sec); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("plan_id", id.String()).Msg("archive enqueue failed")
	}
}
