package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form-specific styles (using theme colors for consistency)
var (
	formFocusedStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	formBlurredStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	formNoStyle      = lipgloss.NewStyle()
	formHelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	formStatusStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	formErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
)

// FieldSpec describes one form input.
type FieldSpec struct {
	Name   string
	Label  string
	Value  string
	Secret bool
}

// Regenerator returns fresh values for the secret fields, keyed by name.
type Regenerator func() (map[string]string, error)

// formField pairs a spec with its text input. initial is the input's value
// before any edit; the input may have normalized spec.Value.
type formField struct {
	spec    FieldSpec
	input   textinput.Model
	initial string
}

// FormModel collects values for a fixed list of fields.
type FormModel struct {
	fields     []formField
	focusIndex int

	// done indicates if the form interaction is complete
	done bool

	// submitted indicates if the form was submitted (true) or cancelled (false)
	submitted bool

	title      string
	regenerate Regenerator
	status     string
	statusErr  bool
	revealed   bool
}

// FormOption is a function that configures a FormModel.
type FormOption func(*FormModel)

// WithTitle sets the form title.
func WithTitle(title string) FormOption {
	return func(m *FormModel) {
		m.title = title
	}
}

// WithRegenerator enables ctrl+r to replace every secret field at once.
func WithRegenerator(fn Regenerator) FormOption {
	return func(m *FormModel) {
		m.regenerate = fn
	}
}

// NewFormModel creates a form for specs, prefilled with their values.
func NewFormModel(specs []FieldSpec, opts ...FormOption) FormModel {
	fields := make([]formField, len(specs))

	for i, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.Label
		ti.CharLimit = 0 // unlimited
		ti.Width = 40
		ti.PromptStyle = formNoStyle
		ti.TextStyle = formNoStyle
		ti.SetValue(spec.Value)
		if spec.Secret {
			ti.EchoMode = textinput.EchoPassword
		}

		if i == 0 {
			ti.Focus()
			ti.PromptStyle = formFocusedStyle
		}

		fields[i] = formField{spec: spec, input: ti, initial: ti.Value()}
	}

	m := FormModel{fields: fields}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch s := key.String(); s {
		case "ctrl+c", "esc":
			m.done = true
			m.submitted = false
			return m, tea.Quit

		case "ctrl+s":
			m.done = true
			m.submitted = true
			return m, tea.Quit

		case "ctrl+r":
			m.regenerateSecrets()
			return m, nil

		case "ctrl+t":
			m.toggleReveal()
			return m, nil

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == len(m.fields)-1 {
				m.done = true
				m.submitted = true
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			// Wrap around
			if m.focusIndex > len(m.fields)-1 {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.fields) - 1
			}

			return m, m.refocus()
		}
	}

	// Only the focused input reacts to keys, so update them all.
	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		m.fields[i].input, cmds[i] = m.fields[i].input.Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *FormModel) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.fields))
	for i := range m.fields {
		if i == m.focusIndex {
			cmds[i] = m.fields[i].input.Focus()
			m.fields[i].input.PromptStyle = formFocusedStyle
		} else {
			m.fields[i].input.Blur()
			m.fields[i].input.PromptStyle = formNoStyle
		}
	}
	return tea.Batch(cmds...)
}

// regenerateSecrets replaces the secret inputs with fresh values. Either
// every returned value is applied or none is.
func (m *FormModel) regenerateSecrets() {
	if m.regenerate == nil {
		return
	}

	values, err := m.regenerate()
	if err != nil {
		m.status = fmt.Sprintf("regeneration failed: %v", err)
		m.statusErr = true
		return
	}

	for i := range m.fields {
		if v, ok := values[m.fields[i].spec.Name]; ok {
			m.fields[i].input.SetValue(v)
			m.fields[i].spec.Value = v
			m.fields[i].initial = m.fields[i].input.Value()
		}
	}
	m.status = "secrets regenerated"
	m.statusErr = false
}

func (m *FormModel) toggleReveal() {
	m.revealed = !m.revealed
	for i := range m.fields {
		if !m.fields[i].spec.Secret {
			continue
		}
		if m.revealed {
			m.fields[i].input.EchoMode = textinput.EchoNormal
		} else {
			m.fields[i].input.EchoMode = textinput.EchoPassword
		}
	}
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	if m.title != "" {
		b.WriteString(RenderTitle(m.title))
		b.WriteString("\n\n")
	}

	for i, field := range m.fields {
		labelStyle := formBlurredStyle
		if i == m.focusIndex {
			labelStyle = formFocusedStyle.Bold(true)
		}

		b.WriteString(labelStyle.Render(field.spec.Label))
		b.WriteString(":\n")
		b.WriteString(field.input.View())
		b.WriteString("\n\n")
	}

	if m.status != "" {
		style := formStatusStyle
		if m.statusErr {
			style = formErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	help := "(Tab to navigate, Enter on last field or ctrl+s to submit, Esc to cancel"
	if m.regenerate != nil {
		help += ", ctrl+r to regenerate secrets"
	}
	help += ", ctrl+t to show secrets)"
	b.WriteString(formHelpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// Values returns the form values keyed by field name, or nil if the form
// was cancelled. Fields the user did not edit keep their given value
// byte for byte.
func (m FormModel) Values() map[string]string {
	if !m.submitted {
		return nil
	}

	values := make(map[string]string, len(m.fields))
	for _, field := range m.fields {
		value := field.spec.Value
		if field.input.Value() != field.initial {
			value = field.input.Value()
		}
		values[field.spec.Name] = value
	}
	return values
}

// IsSubmitted returns true if the form was submitted.
func (m FormModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the form was cancelled.
func (m FormModel) IsCancelled() bool {
	return m.done && !m.submitted
}

// FocusedIndex returns the index of the currently focused field.
func (m FormModel) FocusedIndex() int {
	return m.focusIndex
}

// RunForm displays the form and returns the submitted values, or nil when
// the user cancelled.
func RunForm(specs []FieldSpec, opts ...FormOption) (map[string]string, error) {
	p := tea.NewProgram(NewFormModel(specs, opts...))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run form: %w", err)
	}

	return finalModel.(FormModel).Values(), nil
}
