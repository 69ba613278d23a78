package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExercise(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"* Squats 3x10", true},
		{"- Lunges", true},
		{"Push day • Bench press", true},
		{"1. Deadlift", true},
		{"12. Rows", true},
		{"Day 1: Upper body", false},
		{"Warm up well", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsExercise(tt.line), tt.line)
	}
}

func TestIsMeal(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Breakfast: oats", true},
		{"- Greek yogurt", true},
		{"2. Lentil soup", true},
		{"Drink plenty of water", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMeal(tt.line), tt.line)
	}
}

func TestLines(t *testing.T) {
	section := "**Day 1**\n\n* Squats 3x10\n- **Plank** 60s\nRest well"

	lines := Lines(section, Workout)
	require.Len(t, lines, 4)

	assert.Equal(t, Line{Index: 0, Key: "workout-0", Text: "Day 1", Item: true,
		ImagePrompt: "High quality realistic image of **Day 1** for fitness training"}, lines[0])
	assert.Equal(t, 2, lines[1].Index, "blank lines still count toward the index")
	assert.Equal(t, "workout-2", lines[1].Key)
	assert.Equal(t, "* Squats 3x10", lines[1].Text)
	assert.Equal(t, "- Plank 60s", lines[2].Text)
	assert.Equal(t, "High quality realistic image of - **Plank** 60s for fitness training", lines[2].ImagePrompt)
	assert.True(t, lines[2].Item)
	assert.False(t, lines[3].Item)
	assert.Empty(t, lines[3].ImagePrompt)
}

func TestLinesDiet(t *testing.T) {
	lines := Lines("Breakfast: eggs\nStay hydrated", Diet)
	require.Len(t, lines, 2)

	assert.Equal(t, "diet-0", lines[0].Key)
	assert.True(t, lines[0].Item)
	assert.False(t, lines[1].Item)
}

func TestLinesStableKeys(t *testing.T) {
	section := "1. Squats\n2. Rows"
	assert.Equal(t, Lines(section, Workout), Lines(section, Workout))
}

func TestLinesEmpty(t *testing.T) {
	assert.Nil(t, Lines("  \n", Workout))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"Sleep 8h", "Walk daily"}, Paragraphs("**Sleep 8h**\n\n Walk daily "))
}
