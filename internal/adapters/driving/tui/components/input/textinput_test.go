package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatInput(t *testing.T) {
	in := NewChatInput(nil)

	require.NotNil(t, in)
	assert.Empty(t, in.Value())
	assert.Equal(t, 50, in.Width())
	assert.NotNil(t, in.Init())
}

func TestChatInput_Typing(t *testing.T) {
	in := NewChatInput(nil)

	for _, r := range "فيزياء" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "فيزياء", in.Value())
}

func TestChatInput_SetValueAndReset(t *testing.T) {
	in := NewChatInput(nil)

	in.SetValue("/next")
	assert.Equal(t, "/next", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestChatInput_SetWidth(t *testing.T) {
	in := NewChatInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 92, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}

func TestChatInput_View(t *testing.T) {
	in := NewChatInput(nil)
	in.SetValue("الحرافيش")

	assert.Contains(t, in.View(), "الحرافيش")
}
