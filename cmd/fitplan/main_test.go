package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/fitcoach/internal/completion"
	"github.com/briangreenhill/fitcoach/internal/plan"
)

const canonical = "**WORKOUT PLAN:**\nDay 1: Squats 3x10\n**DIET PLAN:**\nBreakfast: oats\n**LIFESTYLE TIPS:**\nSleep 8h\n**MOTIVATION:**\nYou got this!"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExtractStdinJSON(t *testing.T) {
	out, _, err := execute(t, canonical, "extract", "-o", "json")
	require.NoError(t, err)

	var s plan.Sections
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "Day 1: Squats 3x10", s.Workout)
	assert.Equal(t, "You got this!", s.Motivation)
}

func TestExtractFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.txt")
	require.NoError(t, os.WriteFile(path, []byte("**WORKOUT PLAN:**\nRun"), 0o600))

	out, errOut, err := execute(t, "", "extract", "--report", path)
	require.NoError(t, err)

	assert.Contains(t, out, "== WORKOUT PLAN ==\nRun")
	assert.Contains(t, out, "== MOTIVATION ==\n"+plan.FallbackMotivation)
	assert.NotContains(t, out, "DIET PLAN")
	assert.Contains(t, errOut, "DIET PLAN")
	assert.Contains(t, errOut, "found=false")
}

func TestExtractUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "x", "extract", "-o", "yaml")
	assert.Error(t, err)
}

func TestGenerateRequiresFields(t *testing.T) {
	_, _, err := execute(t, "", "generate", "--name", "Ana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fitplan "+version))
}

type stubPlanner struct {
	s   plan.Sections
	err error
}

func (p stubPlanner) Generate(context.Context, plan.Profile) (plan.Sections, error) {
	return p.s, p.err
}

func TestRunGenerate(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	root := &rootOptions{output: "text"}

	err := runGenerate(context.Background(), cmd, root, stubPlanner{s: plan.Sections{Workout: "Run", Motivation: "Go"}}, plan.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "== WORKOUT PLAN ==\nRun\n\n== MOTIVATION ==\nGo\n\n", out.String())

	err = runGenerate(context.Background(), cmd, root, stubPlanner{err: completion.ErrMissingAPIKey}, plan.Profile{})
	assert.ErrorIs(t, err, completion.ErrMissingAPIKey)

	err = runGenerate(context.Background(), cmd, root, stubPlanner{err: &completion.UpstreamError{StatusCode: 502}}, plan.Profile{})
	assert.EqualError(t, err, "Lovable AI error: 502")

	err = runGenerate(context.Background(), cmd, root, stubPlanner{err: errors.New("boom")}, plan.Profile{})
	assert.EqualError(t, err, "boom")
}
