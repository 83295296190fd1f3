package wizard

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/relaygate/relaygate/internal/config"
)

// WriteFileFunc persists the rendered declarative document. Production code
// uses os.WriteFile; tests inject a capture.
type WriteFileFunc func(name string, data []byte, perm os.FileMode) error

// phase is the wizard's coarse state. Within phasePrompting every field runs
// its own prompt/validate/retry loop; a field is left only on acceptance or,
// for optional fields, on empty input.
type phase int

const (
	phasePrompting phase = iota
	phaseConfirming
	phaseSaved
	phaseAborted
)

// Model is the bubbletea model driving the wizard: a single forward pass
// over the schema's field descriptors with no backtracking across fields.
type Model struct {
	fields   []config.FieldSpec
	idx      int
	input    textinput.Model
	partial  *config.Partial
	errs     []string
	phase    phase
	rendered string
	write    WriteFileFunc
	writeErr error
}

// New returns a wizard that persists to gateway.json in the working
// directory on confirmation.
func New() Model {
	return newModel(os.WriteFile)
}

func newModel(write WriteFileFunc) Model {
	fields := config.Fields()
	m := Model{
		fields:  fields,
		partial: &config.Partial{},
		write:   write,
	}
	m.input = newInput(fields[0])
	return m
}

func newInput(f config.FieldSpec) textinput.Model {
	in := textinput.New()
	in.Width = 64
	if f.Secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	in.Focus()
	return in
}

// Run drives the wizard to completion on the attached terminal. It returns
// nil both when the configuration was saved and when the user discarded it;
// only terminal failures and write failures surface as errors.
func Run() error {
	final, err := tea.NewProgram(New()).Run()
	if err != nil {
		return err
	}

	m, ok := final.(Model)
	if !ok {
		return tea.ErrProgramKilled
	}
	return m.writeErr
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc {
		m.phase = phaseAborted
		return m, tea.Quit
	}

	switch m.phase {
	case phasePrompting:
		if key.Type == tea.KeyEnter {
			return m.submit(), nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseConfirming:
		switch strings.ToLower(key.String()) {
		case "y":
			return m.persist()
		case "n":
			m.phase = phaseAborted
			return m, tea.Quit
		}
	}

	return m, nil
}

// submit validates the current field's candidate value; on failure the
// collected reasons are shown and the same field is prompted again.
func (m Model) submit() Model {
	f := m.fields[m.idx]
	raw := strings.TrimSpace(m.input.Value())

	if raw == "" {
		if f.Optional {
			return m.advance()
		}
		m.errs = []string{"a value is required"}
		return m
	}

	switch f.Kind {
	case config.KindBool:
		v, ok := parseYesNo(raw)
		if !ok {
			m.errs = []string{"answer y or n"}
			return m
		}
		raw = v
	case config.KindEnum:
		raw = strings.ToUpper(raw)
	}

	if msgs := f.Validate(raw); len(msgs) > 0 {
		m.errs = msgs
		return m
	}

	f.Apply(m.partial, raw)
	return m.advance()
}

func (m Model) advance() Model {
	m.errs = nil
	m.idx++
	if m.idx >= len(m.fields) {
		m.phase = phaseConfirming
		m.rendered = render(m.partial)
		return m
	}

	m.input = newInput(m.fields[m.idx])
	return m
}

func (m Model) persist() (tea.Model, tea.Cmd) {
	data := append([]byte(m.rendered), '\n')
	if err := m.write(config.FileName, data, 0o600); err != nil {
		m.writeErr = fmt.Errorf("error writing %s: %w", config.FileName, err)
		m.phase = phaseAborted
		return m, tea.Quit
	}

	m.phase = phaseSaved
	return m, tea.Quit
}

// render produces the declarative document exactly as it will be written,
// so the user confirms the real file content.
func render(p *config.Partial) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		// Partial contains nothing json cannot encode.
		return "{}"
	}
	return string(data)
}

func parseYesNo(raw string) (string, bool) {
	switch strings.ToLower(raw) {
	case "y", "yes", "true":
		return "true", true
	case "n", "no", "false":
		return "false", true
	}
	return "", false
}
