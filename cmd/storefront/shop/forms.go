package shop

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a minimal multi-field text input with a focus cursor. Every data
// entry screen (login, signup, checkout, profile) reuses it.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...formField) form {
	f := form{}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.placeholder
		in.CharLimit = 128
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

type formField struct {
	label       string
	placeholder string
	secret      bool
}

func newLoginForm() form {
	return newForm(
		formField{label: "Email", placeholder: "you@example.com"},
		formField{label: "Password", placeholder: "password", secret: true},
	)
}

func newSignupForm() form {
	return newForm(
		formField{label: "Email", placeholder: "you@example.com"},
		formField{label: "Password", placeholder: "password", secret: true},
		formField{label: "First name", placeholder: "First"},
		formField{label: "Last name", placeholder: "Last"},
	)
}

func newCheckoutForm() form {
	return newForm(
		formField{label: "Shipping address", placeholder: "Street, city, zip"},
		formField{label: "Billing address", placeholder: "Street, city, zip"},
		formField{label: "Phone", placeholder: "555-0100"},
	)
}

func newProfileForm() form {
	return newForm(
		formField{label: "First name"},
		formField{label: "Last name"},
		formField{label: "Phone"},
		formField{label: "Shipping address"},
		formField{label: "Billing address"},
	)
}

// next moves focus forward, wrapping.
func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// prev moves focus backward, wrapping.
func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update routes a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the content of field i.
func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

// setValue prefills field i.
func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// reset clears all fields and refocuses the first.
func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}
