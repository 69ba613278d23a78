// Package render turns plan section text into display lines.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects the item classifier and key prefix for a section.
type Kind string

const (
	Workout Kind = "workout"
	Diet    Kind = "diet"
)

var numbered = regexp.MustCompile(`^\d+\.`)

// Line is one non-blank line of a section.
type Line struct {
	Index       int    // position in the raw split, blank lines included
	Key         string // stable slot key, e.g. "workout-3"
	Text        string
	Item        bool // an exercise or meal that can get an image
	ImagePrompt string
}

// CleanText drops bold markers and surrounding whitespace.
func CleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

// IsExercise reports whether a trimmed workout line names an exercise.
func IsExercise(line string) bool {
	return bulleted(line) || strings.Contains(line, "•") || numbered.MatchString(line)
}

// IsMeal reports whether a trimmed diet line names a meal.
func IsMeal(line string) bool {
	return bulleted(line) || strings.Contains(line, ":") || numbered.MatchString(line)
}

func bulleted(line string) bool {
	return strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-")
}

// Key returns the slot key for the line at index i of a section.
func Key(kind Kind, i int) string {
	return fmt.Sprintf("%s-%d", kind, i)
}

// ImagePrompt builds the picture description for an item line. The line is
// sent as written, markers included.
func ImagePrompt(text string) string {
	return "High quality realistic image of " + strings.TrimSpace(text) + " for fitness training"
}

// Lines splits section into display lines. Keys use the raw line index so
// they stay put when the same section is rendered again.
func Lines(section string, kind Kind) []Line {
	if strings.TrimSpace(section) == "" {
		return nil
	}

	classify := IsExercise
	if kind == Diet {
		classify = IsMeal
	}

	var out []Line
	for i, raw := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		l := Line{
			Index: i,
			Key:   Key(kind, i),
			Text:  CleanText(trimmed),
			Item:  classify(trimmed),
		}
		if l.Item {
			l.ImagePrompt = ImagePrompt(trimmed)
		}
		out = append(out, l)
	}
	return out
}

// Paragraphs splits free text (tips, motivation) into non-blank cleaned lines.
func Paragraphs(section string) []string {
	var out []string
	for _, raw := range strings.Split(section, "\n") {
		if t := CleanText(raw); t != "" {
			out = append(out, t)
		}
	}
	return out
}
