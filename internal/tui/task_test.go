package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskModel_Done(t *testing.T) {
	m := newTaskModel("Building project")
	assert.Contains(t, m.View(), "Building project")

	updated, cmd := m.Update(taskDoneMsg{result: "Done!"})
	require.NotNil(t, cmd)
	final := updated.(taskModel)
	assert.True(t, final.done)
	assert.Contains(t, final.View(), SymbolCheck+" Done!")
}

func TestTaskModel_Failed(t *testing.T) {
	updated, _ := newTaskModel("x").Update(taskDoneMsg{err: errors.New("missing metadata")})
	assert.Contains(t, updated.(taskModel).View(), SymbolCross+" missing metadata")
}

func TestTaskModel_CtrlC(t *testing.T) {
	updated, cmd := newTaskModel("x").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	final := updated.(taskModel)
	assert.True(t, final.interrupted)
	assert.Contains(t, final.View(), "interrupted")
}

func TestTaskModel_IgnoresOtherKeys(t *testing.T) {
	updated, cmd := newTaskModel("x").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.False(t, updated.(taskModel).done)
}

func TestRunTask_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	called := false
	err := RunTask(context.Background(), ModeNonInteractive, &out, "working", func(ctx context.Context) (string, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, out.String())

	boom := errors.New("boom")
	err = RunTask(context.Background(), ModeNonInteractive, &out, "working", func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}
