package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"))
)

type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 24
	return formField{label: label, input: ti}
}

// form is a vertical list of text inputs with one focused at a time
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() {
	if f.focus < len(f.fields)-1 {
		f.setFocus(f.focus + 1)
	}
}

func (f *form) prev() {
	if f.focus > 0 {
		f.setFocus(f.focus - 1)
	}
}

func (f form) onLastField() bool {
	return f.focus == len(f.fields)-1
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) setValue(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) setPlaceholder(i int, p string) {
	f.fields[i].input.Placeholder = p
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.setFocus(0)
}

// update moves focus on navigation keys and otherwise edits the focused field
func (f *form) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, nextFieldKey):
			f.next()
			return nil
		case key.Matches(km, prevFieldKey):
			f.prev()
			return nil
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f form) view() string {
	var b strings.Builder
	for i, fld := range f.fields {
		label := LabelStyle.Render(fld.label)
		if i == f.focus {
			label = SelectedItemStyle.Width(16).Render(fld.label)
		}
		b.WriteString(label + " " + fld.input.View() + "\n")
	}
	return b.String()
}
