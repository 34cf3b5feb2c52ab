package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSortCommand(t *testing.T, format string, extra ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewSortCommand(rootOpts)
	cmd.SetOut(buf)
	args := append(extra,
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries.yaml"),
	)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestSortDefaultGolden(t *testing.T) {
	// No --by flags: newest first.
	buf, err := runSortCommand(t, "text")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sort_default", buf.Bytes())
}

func TestSortByRatingGolden(t *testing.T) {
	// Highest first, unrated last; equal ratings keep stored order.
	buf, err := runSortCommand(t, "text", "--by", "rating")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sort_by_rating", buf.Bytes())
}

func TestSortByNameAscending(t *testing.T) {
	buf, err := runSortCommand(t, "json", "--by", "name:asc")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	rows, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 5)

	names := make([]string, len(rows))
	for i, r := range rows {
		row, ok := r.(map[string]any)
		require.True(t, ok)
		names[i] = row["name"].(string)
	}
	assert.Equal(t, []string{"Beloved", "Dubliners", "Invisible Cities", "Pale Fire", "The Trial"}, names)
}

func TestSortCompositeTieBreak(t *testing.T) {
	// b1 and b2 share a 4.5 rating; the name key breaks the tie.
	buf, err := runSortCommand(t, "json", "--by", "rating", "--by", "name")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	rows := resp.Data.([]any)
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.(map[string]any)["id"].(string)
	}
	assert.Equal(t, []string{"b5", "b1", "b2", "b4", "b3"}, ids)
}

func TestSortBadFlags(t *testing.T) {
	tests := []struct {
		name string
		by   []string
	}{
		{"unknown key", []string{"--by", "color"}},
		{"bad direction", []string{"--by", "name:up"}},
		{"duplicate key", []string{"--by", "name", "--by", "name:desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := runSortCommand(t, "text", tt.by...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, buf.String(), "BAD_FLAGS")
		})
	}
}
