// Package prompt builds the plan-generation prompt sent to the model
package prompt

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/fitcoach/internal/plan"
)

// Build returns the prompt for a profile. Optional fields are only included
// when they are set.
func Build(p plan.Profile) string {
	var b strings.Builder

	b.WriteString("You are an expert AI fitness coach. Generate a detailed, personalized fitness plan based on the following information:\n\n")

	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %s\n", p.Age)
	fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "Height: %s cm\n", p.Height)
	fmt.Fprintf(&b, "Weight: %s kg\n", p.Weight)
	fmt.Fprintf(&b, "Fitness Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "Current Fitness Level: %s\n", p.FitnessLevel)
	fmt.Fprintf(&b, "Workout Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Dietary Preference: %s\n", p.Diet)
	if v := strings.TrimSpace(p.MedicalHistory); v != "" {
		fmt.Fprintf(&b, "Medical History: %s\n", v)
	}
	if v := strings.TrimSpace(p.StressLevel); v != "" {
		fmt.Fprintf(&b, "Stress Level: %s\n", v)
	}

	b.WriteString("\n")
	b.WriteString(instructions)
	return b.String()
}

// Headings returns the section headings the prompt asks the model to use, in order.
func Headings() []string {
	return []string{
		"**" + plan.Workout.String() + ":**",
		"**" + plan.Diet.String() + ":**",
		"**" + plan.Tips.String() + ":**",
		"**" + plan.Motivation.String() + ":**",
	}
}

var instructions = `Generate a comprehensive plan that includes:

1. WORKOUT PLAN: A detailed weekly workout schedule with specific exercises, sets, reps, and rest times. Consider their fitness level and location. Include warm-up and cool-down routines.

2. DIET PLAN: A complete daily nutrition plan with breakfast, lunch, dinner, and snacks. Include portion sizes and macro breakdown. Make it suitable for their dietary preference.

3. LIFESTYLE TIPS: Provide 3-5 actionable tips for better posture, stress management, sleep, and overall wellness.

4. MOTIVATION: Include one powerful motivational quote or message to inspire them.

Format your response EXACTLY as follows (use clear sections):

` + strings.Join(formatBlocks(), "\n\n") + `

Make it personalized, actionable, and encouraging. Be specific with exercise names, meal descriptions, and practical advice.`

func formatBlocks() []string {
	placeholders := []string{
		"[Detailed workout plan here]",
		"[Detailed diet plan here]",
		"[Tips here]",
		"[Motivational message here]",
	}
	blocks := make([]string, 0, len(placeholders))
	for i, h := range Headings() {
		blocks = append(blocks, h+"\n"+placeholders[i])
	}
	return blocks
}
