package routes

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/render"
)

const (
	pageTitle      = "AI Fitness Coach"
	noticeMissing  = "Please fill in all required fields"
	noticeFailed   = "Failed to generate plan. Please try again."
	flashGenerated = "Your personalized fitness plan is ready!"
)

type formOptions struct {
	Gender       []string
	Goal         []string
	FitnessLevel []string
	Location     []string
	Diet         []string
	StressLevel  []string
}

var options = formOptions{
	Gender:       []string{"male", "female", "other"},
	Goal:         []string{"weight_loss", "muscle_gain", "maintenance", "endurance", "flexibility"},
	FitnessLevel: []string{"beginner", "intermediate", "advanced"},
	Location:     []string{"home", "gym", "outdoor", "mixed"},
	Diet:         []string{"vegetarian", "non_vegetarian", "vegan", "keto", "paleo"},
	StressLevel:  []string{"low", "moderate", "high"},
}

type formView struct {
	Title    string
	DarkMode bool
	Flash    string
	Notice   string
	Missing  []string
	Profile  plan.Profile
	Options  formOptions
}

type planView struct {
	Title         string
	DarkMode      bool
	Flash         string
	Notice        string
	PlanID        string
	Profile       plan.Profile
	Sections      plan.Sections
	Workout       []render.Line
	Diet          []render.Line
	Tips          []string
	Motivation    []string
	Images        map[string]template.URL
	SpeechEnabled bool
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dark := s.Store.DarkMode(ctx)
	flash := s.Sess.PopString(ctx, keyFlash)
	profile, _ := s.Store.Profile(ctx)

	id, sec, ok := s.Store.Plan(ctx)
	if !ok {
		s.render(w, r, http.StatusOK, "form", formView{
			Title: pageTitle, DarkMode: dark, Flash: flash, Profile: profile, Options: options,
		})
		return
	}

	s.render(w, r, http.StatusOK, "plan", planView{
		Title:         pageTitle,
		DarkMode:      dark,
		Flash:         flash,
		PlanID:        id,
		Profile:       profile,
		Sections:      sec,
		Workout:       render.Lines(sec.Workout, render.Workout),
		Diet:          render.Lines(sec.Diet, render.Diet),
		Tips:          render.Paragraphs(sec.Tips),
		Motivation:    render.Paragraphs(sec.Motivation),
		Images:        s.images(id),
		SpeechEnabled: s.Speech != nil,
	})
}

func (s *Server) images(planID string) map[string]template.URL {
	if s.Boards == nil || planID == "" {
		return nil
	}
	all := s.Boards.For(planID).All()
	out := make(map[string]template.URL, len(all))
	for k, v := range all {
		// data: URLs from the image model; trusted because only the server writes them
		out[k] = template.URL(v)
	}
	return out
}

func profileFromForm(r *http.Request) plan.Profile {
	f := func(k string) string { return strings.TrimSpace(r.PostForm.Get(k)) }
	return plan.Profile{
		Name:           f("name"),
		Age:            f("age"),
		Gender:         f("gender"),
		Height:         f("height"),
		Weight:         f("weight"),
		Goal:           f("goal"),
		FitnessLevel:   f("fitnessLevel"),
		Location:       f("location"),
		Diet:           f("diet"),
		MedicalHistory: f("medicalHistory"),
		StressLevel:    f("stressLevel"),
	}
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	p := profileFromForm(r)
	view := formView{Title: pageTitle, DarkMode: s.Store.DarkMode(ctx), Profile: p, Options: options}

	if missing := p.Missing(); len(missing) > 0 {
		view.Notice = noticeMissing
		view.Missing = missing
		s.render(w, r, http.StatusUnprocessableEntity, "form", view)
		return
	}

	sec, err := s.Planner.Generate(ctx, p)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error generating plan")
		view.Notice = noticeFailed
		s.render(w, r, http.StatusInternalServerError, "form", view)
		return
	}

	id := uuid.New()
	if err := s.Store.Save(ctx, id.String(), p, sec); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save plan to session")
		view.Notice = noticeFailed
		s.render(w, r, http.StatusInternalServerError, "form", view)
		return
	}
	s.Sess.Put(ctx, keyFlash, flashGenerated)
	s.archive(r, id, p, sec)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handlePlanImage generates the picture for one item line of the saved plan
// and stores it in that line's slot.
func (s *Server) handlePlanImage(w http.ResponseWriter, r *http.Request) {
	if s.Images == nil || s.Boards == nil {
		http.Error(w, "image generation not configured", http.StatusServiceUnavailable)
		return
	}
	id, sec, ok := s.Store.Plan(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	key := chi.URLParam(r, "key")
	line, ok := findItem(sec, key)
	if !ok {
		http.Error(w, "unknown item", http.StatusNotFound)
		return
	}

	url, err := s.Images.Generate(r.Context(), line.ImagePrompt)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("key", key).Msg("generate item image")
		http.Error(w, "Failed to generate image", http.StatusBadGateway)
		return
	}
	s.Boards.For(id).Set(key, url)

	http.Redirect(w, r, "/#"+key, http.StatusSeeOther)
}

// findItem resolves "workout-3" or "diet-7" to an item line of sec.
func findItem(sec plan.Sections, key string) (render.Line, bool) {
	kind, idx, ok := strings.Cut(key, "-")
	if !ok {
		return render.Line{}, false
	}
	if _, err := strconv.Atoi(idx); err != nil {
		return render.Line{}, false
	}

	var lines []render.Line
	switch render.Kind(kind) {
	case render.Workout:
		lines = render.Lines(sec.Workout, render.Workout)
	case render.Diet:
		lines = render.Lines(sec.Diet, render.Diet)
	default:
		return render.Line{}, false
	}
	for _, l := range lines {
		if l.Key == key && l.Item {
			return l, true
		}
	}
	return render.Line{}, false
}

// handlePlanSpeech reads a whole section of the saved plan aloud.
func (s *Server) handlePlanSpeech(w http.ResponseWriter, r *http.Request) {
	_, sec, ok := s.Store.Plan(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no plan")
		return
	}

	category := chi.URLParam(r, "category")
	var text string
	switch render.Kind(category) {
	case render.Workout:
		text = sec.Workout
	case render.Diet:
		text = sec.Diet
	}
	s.speak(w, r, category, text)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id, _, ok := s.Store.Plan(ctx); ok && s.Boards != nil && id != "" {
		s.Boards.Drop(id)
	}
	s.Store.Clear(ctx)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.Store.SetDarkMode(ctx, !s.Store.DarkMode(ctx))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
