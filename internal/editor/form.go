package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
)

// Positions of the single-line inputs; the notes textarea sits after them.
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCompany
	fieldTags
	fieldNotes
)

// formModel is the add/edit screen: five single-line inputs plus a multi-line
// notes area. It holds no store reference; the parent model submits its field
// set and decides what happens next.
type formModel struct {
	msgs   Messages
	styles Styles

	title  string
	inputs []textinput.Model
	notes  textarea.Model
	focus  int
	errMsg string
}

// newForm builds the form pre-filled with the given field values. An empty
// Fields value yields a blank form for adding a contact.
func newForm(msgs Messages, styles Styles, title string, initial model.Fields) formModel {
	labels := []string{
		msgs[msgLabelName], msgs[msgLabelEmail], msgs[msgLabelPhone],
		msgs[msgLabelCompany], msgs[msgLabelTags],
	}
	values := []string{initial.Name, initial.Email, initial.Phone, initial.Company, initial.Tags}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = labels[i]
		in.CharLimit = 256
		in.Width = 48
		in.SetValue(values[i])
		inputs[i] = in
	}
	inputs[fieldName].Focus()

	notes := textarea.New()
	notes.Placeholder = msgs[msgLabelNotes]
	notes.SetWidth(50)
	notes.SetHeight(4)
	notes.ShowLineNumbers = false
	notes.CharLimit = 2000
	notes.SetValue(initial.Notes)

	return formModel{
		msgs:   msgs,
		styles: styles,
		title:  title,
		inputs: inputs,
		notes:  notes,
	}
}

// inNotes reports whether the notes textarea has focus, in which case enter
// and the arrow keys belong to it.
func (f formModel) inNotes() bool {
	return f.focus == fieldNotes
}

// moveFocus shifts focus forward or backward with wrap-around and returns the
// command that makes the newly focused field blink.
func (f *formModel) moveFocus(backward bool) tea.Cmd {
	if backward {
		f.focus--
	} else {
		f.focus++
	}
	if f.focus > fieldNotes {
		f.focus = fieldName
	}
	if f.focus < fieldName {
		f.focus = fieldNotes
	}
	return f.applyFocus()
}

// applyFocus blurs everything except the current field.
func (f *formModel) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.inNotes() {
		cmd = f.notes.Focus()
	} else {
		f.notes.Blur()
	}
	return cmd
}

// Update forwards the message to the focused field only.
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	if f.inNotes() {
		f.notes, cmd = f.notes.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd
}

// fields collects the current form values with surrounding whitespace
// stripped, matching what validation and the store expect.
func (f formModel) fields() model.Fields {
	return model.Fields{
		Name:    strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Phone:   strings.TrimSpace(f.inputs[fieldPhone].Value()),
		Company: strings.TrimSpace(f.inputs[fieldCompany].Value()),
		Tags:    strings.TrimSpace(f.inputs[fieldTags].Value()),
		Notes:   strings.TrimSpace(f.notes.Value()),
	}
}

func (f formModel) View() string {
	var b strings.Builder
	b.WriteString(f.styles.Title.Render(f.title))
	b.WriteString("\n\n")

	labels := []string{
		f.msgs[msgLabelName], f.msgs[msgLabelEmail], f.msgs[msgLabelPhone],
		f.msgs[msgLabelCompany], f.msgs[msgLabelTags],
	}
	for i, in := range f.inputs {
		b.WriteString(f.styles.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(f.styles.Label.Render(f.msgs[msgLabelNotes]))
	b.WriteString("\n")
	b.WriteString(f.notes.View())
	b.WriteString("\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render(f.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.styles.Help.Render(f.msgs[msgHelpForm]))
	b.WriteString("\n")
	return b.String()
}
