package plan

import (
	"regexp"
	"sort"
	"strings"
)

// FallbackMotivation is used when the model leaves out the MOTIVATION section.
const FallbackMotivation = "Your fitness journey starts today. Every small step counts!"

// Section identifies one of the four plan parts. The order of the constants is
// the order the headings are expected in.
type Section int

const (
	Workout Section = iota
	Diet
	Tips
	Motivation
)

var labels = [...]string{
	Workout:    "WORKOUT PLAN",
	Diet:       "DIET PLAN",
	Tips:       "LIFESTYLE TIPS",
	Motivation: "MOTIVATION",
}

func (s Section) String() string {
	return labels[s]
}

// headingPatterns match a label wrapped in up to two asterisks on either side,
// independently, with an optional colon before or after the closing markers.
var headingPatterns = func() [len(labels)]*regexp.Regexp {
	var out [len(labels)]*regexp.Regexp
	for i, l := range labels {
		out[i] = regexp.MustCompile(`(?i)\*{0,2}` + regexp.QuoteMeta(l) + `:?\*{0,2}:?`)
	}
	return out
}()

var (
	// a diet word followed within 100 characters by a meal word
	dietHint = regexp.MustCompile(`(?is)(?:diet|nutrition).{0,100}?(?:breakfast|meal|calorie|protein)`)
	dietStop = regexp.MustCompile(`(?i)lifestyle|tips|motivation`)
)

type heading struct {
	section    Section
	start, end int
}

// Report describes how Parse arrived at its result.
type Report struct {
	Found          [len(labels)]bool
	DietRecovered  bool
	RawLength      int
	SectionLengths [len(labels)]int
}

// Extract splits raw model output into plan sections. It never fails: missing
// headings fall back to defaults.
func Extract(raw string) Sections {
	s, _ := Parse(raw)
	return s
}

// Parse is Extract plus a report of which headings were found.
func Parse(raw string) (Sections, Report) {
	rep := Report{RawLength: len(raw)}
	heads := locate(raw)

	bodies := make(map[Section]string, len(heads))
	for i, h := range heads {
		end := len(raw)
		if i+1 < len(heads) {
			end = heads[i+1].start
		}
		bodies[h.section] = strings.TrimSpace(raw[h.end:end])
		rep.Found[h.section] = true
	}

	var s Sections
	if rep.Found[Workout] {
		s.Workout = bodies[Workout]
	} else {
		s.Workout = strings.TrimSpace(raw)
	}

	if rep.Found[Diet] {
		s.Diet = bodies[Diet]
	} else if d, ok := recoverDiet(raw, heads); ok {
		s.Diet = d
		rep.DietRecovered = true
	}

	s.Tips = bodies[Tips]

	if rep.Found[Motivation] {
		s.Motivation = bodies[Motivation]
	} else {
		s.Motivation = FallbackMotivation
	}

	rep.SectionLengths = [len(labels)]int{len(s.Workout), len(s.Diet), len(s.Tips), len(s.Motivation)}
	return s, rep
}

// locate finds the first heading of each label and returns those present
// ordered by position.
func locate(raw string) []heading {
	var heads []heading
	for i, re := range headingPatterns {
		if loc := re.FindStringIndex(raw); loc != nil {
			heads = append(heads, heading{section: Section(i), start: loc[0], end: loc[1]})
		}
	}
	sort.Slice(heads, func(i, j int) bool { return heads[i].start < heads[j].start })
	return heads
}

// recoverDiet looks for nutrition prose when the DIET heading is missing. The
// run ends at the first lifestyle/tips/motivation word or recognised heading
// after the match, whichever comes first.
func recoverDiet(raw string, heads []heading) (string, bool) {
	loc := dietHint.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}

	end := len(raw)
	if stop := dietStop.FindStringIndex(raw[loc[1]:]); stop != nil {
		end = loc[1] + stop[0]
	}
	for _, h := range heads {
		if h.start > loc[0] && h.start < end {
			end = h.start
		}
	}

	d := strings.TrimSpace(raw[loc[0]:end])
	return d, d != ""
}
