package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDecodesNumbers(t *testing.T) {
	var p Profile
	err := json.Unmarshal([]byte(`{"name":"Ana","age":30,"height":170.5,"weight":"65","goal":"Weight Loss"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "30", p.Age)
	assert.Equal(t, "170.5", p.Height)
	assert.Equal(t, "65", p.Weight)
	assert.Equal(t, "Weight Loss", p.Goal)
}

func TestProfileDecodeNullAndBadValues(t *testing.T) {
	var p Profile
	require.NoError(t, json.Unmarshal([]byte(`{"age":null}`), &p))
	assert.Empty(t, p.Age)
	assert.Contains(t, p.Missing(), "age")

	assert.Error(t, json.Unmarshal([]byte(`{"age":true}`), &p))
}

func TestProfileDecodeKeepsAbsentFields(t *testing.T) {
	p := Profile{Age: "41", Weight: "80"}
	require.NoError(t, json.Unmarshal([]byte(`{"weight":82}`), &p))

	assert.Equal(t, "41", p.Age)
	assert.Equal(t, "82", p.Weight)
}
