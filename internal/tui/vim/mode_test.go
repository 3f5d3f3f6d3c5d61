package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	t.Run("mode string representation", func(t *testing.T) {
		assert.Equal(t, "NORMAL", ModeNormal.String())
		assert.Equal(t, "INSERT", ModeInsert.String())
		assert.Equal(t, "UNKNOWN", Mode(42).String())
	})

	t.Run("badge contains mode name", func(t *testing.T) {
		assert.Contains(t, ModeInsert.Badge(), "INSERT")
		assert.Contains(t, ModeNormal.Badge(), "NORMAL")
	})
}

func TestNewModeManager(t *testing.T) {
	t.Run("starts in normal mode", func(t *testing.T) {
		m := NewModeManager()
		assert.Equal(t, ModeNormal, m.Current())
		assert.False(t, m.IsInsert())
	})
}

func TestModeManager_ModeTransitions(t *testing.T) {
	t.Run("enters insert mode", func(t *testing.T) {
		m := NewModeManager()
		assert.True(t, m.SetMode(ModeInsert))
		assert.True(t, m.IsInsert())
	})

	t.Run("returns to normal mode", func(t *testing.T) {
		m := NewModeManager()
		m.SetMode(ModeInsert)
		m.SetMode(ModeNormal)
		assert.Equal(t, ModeNormal, m.Current())
		assert.False(t, m.IsInsert())
	})

	t.Run("setting the same mode is not a transition", func(t *testing.T) {
		m := NewModeManager()
		m.SetMode(ModeInsert)
		assert.False(t, m.SetMode(ModeInsert))
		assert.True(t, m.IsInsert())
	})

	t.Run("reset returns to normal", func(t *testing.T) {
		m := NewModeManager()
		m.SetMode(ModeInsert)
		m.Reset()
		assert.Equal(t, ModeNormal, m.Current())
	})
}
