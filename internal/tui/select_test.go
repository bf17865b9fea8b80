package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/libris/internal/googlebooks"
)

func testVolumes() []*googlebooks.Volume {
	return []*googlebooks.Volume{
		{
			ID:            "zyTCAlFPjgYC",
			Title:         "Flowers for Algernon",
			Authors:       []string{"Daniel Keyes"},
			Publisher:     "Harvest Books",
			PublishedDate: "2004",
			PageCount:     311,
			Language:      "en",
		},
		{
			ID:      "abcdefghijkl",
			Title:   "The Minds of Billy Milligan",
			Authors: []string{"Daniel Keyes"},
		},
	}
}

func TestSelectVolumeEmptyResultsSkips(t *testing.T) {
	result, err := SelectVolume("keyes", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
	assert.Nil(t, result.Selection)
}

func TestSelectVolumeReturnsSelection(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		picker, ok := m.(*pickerModel)
		require.True(t, ok)
		updated, _ := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return updated, nil
	}

	result, err := SelectVolume("keyes", testVolumes())
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, "zyTCAlFPjgYC", result.Selection.ID)
}

func TestSelectVolumeQuitStops(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		picker, ok := m.(*pickerModel)
		require.True(t, ok)
		updated, _ := picker.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		return updated, nil
	}

	result, err := SelectVolume("keyes", testVolumes())
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
}

func TestSelectVolumeEscapeSkips(t *testing.T) {
	orig := runProgram
	t.Cleanup(func() { runProgram = orig })

	runProgram = func(m tea.Model) (tea.Model, error) {
		picker, ok := m.(*pickerModel)
		require.True(t, ok)
		updated, _ := picker.Update(tea.KeyMsg{Type: tea.KeyEsc})
		return updated, nil
	}

	result, err := SelectVolume("keyes", testVolumes())
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)
	assert.Nil(t, result.Selection)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "a very long...", truncate("a very long piece of text", 14))
	assert.Equal(t, "collaps...", truncate("collapses     whitespace", 10))
}

func TestFormatMetadata(t *testing.T) {
	volume := testVolumes()[0]
	metadata := formatMetadata(volume, 80)
	assert.Contains(t, metadata, "Harvest Books")
	assert.Contains(t, metadata, "311p")
	assert.Contains(t, metadata, "EN")

	empty := formatMetadata(&googlebooks.Volume{}, 80)
	assert.Equal(t, "No metadata available", empty)
}
