// Package plan holds the fitness profile and plan types and splits raw model
// output into plan sections.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Profile is what the user submits through the form or the JSON API.
// Field names match the browser client's payload.
type Profile struct {
	Name           string `json:"name"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Height         string `json:"height"` // cm
	Weight         string `json:"weight"` // kg
	Goal           string `json:"goal"`
	FitnessLevel   string `json:"fitnessLevel"`
	Location       string `json:"location"`
	Diet           string `json:"diet"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
	StressLevel    string `json:"stressLevel,omitempty"`
}

// UnmarshalJSON accepts age, height and weight as either strings or numbers.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type alias Profile
	aux := struct {
		*alias
		Age    scalar `json:"age"`
		Height scalar `json:"height"`
		Weight scalar `json:"weight"`
	}{alias: (*alias)(p), Age: scalar(p.Age), Height: scalar(p.Height), Weight: scalar(p.Weight)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Age, p.Height, p.Weight = string(aux.Age), string(aux.Height), string(aux.Weight)
	return nil
}

// scalar is a JSON string or number kept in its text form.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = scalar(n.String())
	return nil
}

// Missing returns the JSON names of required fields that are blank, in form order.
func (p Profile) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"name", p.Name},
		{"age", p.Age},
		{"gender", p.Gender},
		{"height", p.Height},
		{"weight", p.Weight},
		{"goal", p.Goal},
		{"fitnessLevel", p.FitnessLevel},
		{"location", p.Location},
		{"diet", p.Diet},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Sections is a generated plan split into its four parts.
// Workout is never empty unless the model returned nothing at all.
type Sections struct {
	Workout    string `json:"workout"`
	Diet       string `json:"diet"`
	Tips       string `json:"tips"`
	Motivation string `json:"motivation"`
}
