package routes

import (
	"context"
	"encoding/json"

	scs "github.com/alexedwards/scs/v2"

	"github.com/briangreenhill/fitcoach/internal/plan"
)

// Session keys. The names match what the browser client kept locally.
const (
	keyProfile  = "fitnessData"
	keyPlan     = "fitnessPlan"
	keyDarkMode = "darkMode"
	keyPlanID   = "planId"
	keyFlash    = "flash"
)

// PlanStore persists the last profile and plan for one visitor.
type PlanStore interface {
	Profile(ctx context.Context) (plan.Profile, bool)
	Plan(ctx context.Context) (id string, s plan.Sections, ok bool)
	Save(ctx context.Context, id string, p plan.Profile, s plan.Sections) error
	Clear(ctx context.Context)
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, on bool)
}

// SessionStore keeps plan state in the scs session as JSON blobs.
type SessionStore struct {
	Sess *scs.SessionManager
}

func (s SessionStore) Profile(ctx context.Context) (plan.Profile, bool) {
	var p plan.Profile
	ok := s.decode(ctx, keyProfile, &p)
	return p, ok
}

func (s SessionStore) Plan(ctx context.Context) (string, plan.Sections, bool) {
	var sec plan.Sections
	if !s.decode(ctx, keyPlan, &sec) {
		return "", plan.Sections{}, false
	}
	return s.Sess.GetString(ctx, keyPlanID), sec, true
}

// Save overwrites both blobs.
func (s SessionStore) Save(ctx context.Context, id string, p plan.Profile, sec plan.Sections) error {
	pb, err := json.Marshal(p)
	if err != nil {
		return err
	}
	sb, err := json.Marshal(sec)
	if err != nil {
		return err
	}
	s.Sess.Put(ctx, keyProfile, string(pb))
	s.Sess.Put(ctx, keyPlan, string(sb))
	s.Sess.Put(ctx, keyPlanID, id)
	return nil
}

func (s SessionStore) Clear(ctx context.Context) {
	s.Sess.Remove(ctx, keyPlan)
	s.Sess.Remove(ctx, keyProfile)
	s.Sess.Remove(ctx, keyPlanID)
}

func (s SessionStore) DarkMode(ctx context.Context) bool {
	return s.Sess.GetBool(ctx, keyDarkMode)
}

func (s SessionStore) SetDarkMode(ctx context.Context, on bool) {
	s.Sess.Put(ctx, keyDarkMode, on)
}

// decode treats a corrupt blob as absent.
func (s SessionStore) decode(ctx context.Context, key string, v any) bool {
	raw := s.Sess.GetString(ctx, key)
	if raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}
