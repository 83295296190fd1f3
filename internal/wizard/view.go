package wizard

import (
	"fmt"
	"strings"

	"github.com/relaygate/relaygate/internal/config"
)

func (m Model) View() string {
	switch m.phase {
	case phaseConfirming:
		return m.viewConfirm()
	case phaseSaved:
		return appStyle.Render(titleStyle.Render("Saved "+config.FileName) + "\n")
	case phaseAborted:
		if m.writeErr != nil {
			return appStyle.Render(errorStyle.Render(m.writeErr.Error()) + "\n")
		}
		return appStyle.Render(helpStyle.Render("Discarded, nothing written.") + "\n")
	}
	return m.viewPrompt()
}

func (m Model) viewPrompt() string {
	f := m.fields[m.idx]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("relaygate setup — %d/%d", m.idx+1, len(m.fields))))
	b.WriteString("\n\n")
	b.WriteString(f.Description)
	b.WriteString("\n")
	if hint := promptHint(f); hint != "" {
		b.WriteString(helpStyle.Render(hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for _, e := range m.errs {
		b.WriteString(errorStyle.Render("✗ " + e))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter confirm  esc quit"))

	return appStyle.Render(b.String())
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("relaygate setup — review"))
	b.WriteString("\n\n")
	b.WriteString(m.rendered)
	b.WriteString("\n\n")
	b.WriteString("Write this configuration to " + config.FileName + "? (y/n)")

	return appStyle.Render(b.String())
}

// promptHint derives the secondary prompt line from the descriptor alone.
func promptHint(f config.FieldSpec) string {
	var parts []string
	switch f.Kind {
	case config.KindBool:
		parts = append(parts, "y/n")
	case config.KindEnum:
		parts = append(parts, "one of "+strings.Join(f.Choices, ", "))
	case config.KindStringList:
		parts = append(parts, "comma separated")
	case config.KindCommand:
		parts = append(parts, "whitespace separated")
	}
	if f.Optional {
		parts = append(parts, "optional, empty to skip")
	}
	return strings.Join(parts, "; ")
}
