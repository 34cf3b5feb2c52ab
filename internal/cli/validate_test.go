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

func TestValidateAllValid(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries.yaml"),
	})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "5 checked, 0 invalid")
}

func TestValidateMixedGolden(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries-bad.yaml"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 of 3 entries invalid")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "validate_mixed", buf.Bytes())
}

func TestValidateMixedJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries-bad.yaml"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["checked"])
	assert.Equal(t, float64(2), data["invalid"])
}

func TestValidateStarsMinFlag(t *testing.T) {
	// Raising the floor to 1 does not affect these entries; the flag is
	// accepted and the run still passes.
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		"--stars-min", "1",
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries.yaml"),
	})

	require.NoError(t, cmd.Execute())
}

func TestValidateBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad stars-min", []string{"--stars-min", "0.3"}},
		{"bad precision", []string{"--precision", "two-decimal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			rootOpts := &RootOptions{Format: "text"}
			cmd := NewValidateCommand(rootOpts)
			cmd.SetOut(buf)
			args := append(tt.args,
				filepath.Join("testdata", "books.cue"),
				filepath.Join("testdata", "entries.yaml"),
			)
			cmd.SetArgs(args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, buf.String(), "BAD_FLAGS")
		})
	}
}

func TestValidateEntriesTypo(t *testing.T) {
	// Strict YAML decoding rejects unknown keys instead of dropping them.
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		filepath.Join("testdata", "books.cue"),
		filepath.Join("testdata", "entries-typo.yaml"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "ENTRIES")
}
