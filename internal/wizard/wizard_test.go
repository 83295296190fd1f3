package wizard

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaygate/relaygate/internal/config"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// fileCapture records what the wizard persisted without touching the real
// working directory.
type fileCapture struct {
	name    string
	data    []byte
	written bool
	err     error
}

func (c *fileCapture) write(name string, data []byte, _ os.FileMode) error {
	if c.err != nil {
		return c.err
	}
	c.name = name
	c.data = data
	c.written = true
	return nil
}

// ── update helpers ────────────────────────────────────────────────────────────

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func enter(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// answer types s into the current prompt and submits it.
func answer(t *testing.T, m Model, s string) Model {
	t.Helper()
	if s != "" {
		m = typeText(t, m, s)
	}
	return enter(t, m)
}

// completeAll walks the wizard through every field with a full set of
// answers and returns the model sitting at the confirmation prompt.
func completeAll(t *testing.T, m Model) Model {
	t.Helper()
	answers := []string{
		"node server.js --port 3000",      // server
		testKey,                           // privateKey
		"wss://a.example,wss://b.example", // relays
		"y",                               // public
		"demo gateway",                    // serverInfo.name
		"",                                // serverInfo.picture (skipped)
		"https://example.com",             // serverInfo.website
		"aaa,bbb",                         // allowedPublicKeys
		"required",                        // encryptionMode, lowercase on purpose
	}
	for _, a := range answers {
		m = answer(t, m, a)
	}
	require.Equal(t, phaseConfirming, m.phase)
	return m
}

// ── per-field loop ────────────────────────────────────────────────────────────

// TestWizard_RequiredFieldRePrompts verifies that empty input on a required
// field stays on the field with a reason instead of advancing.
func TestWizard_RequiredFieldRePrompts(t *testing.T) {
	m := newModel((&fileCapture{}).write)

	m = enter(t, m)

	assert.Equal(t, 0, m.idx)
	assert.Equal(t, []string{"a value is required"}, m.errs)
}

// TestWizard_InvalidValueRetriesSameField verifies the validate/retry loop:
// a failing candidate shows the collected reasons and keeps the field; the
// next acceptable candidate is taken.
func TestWizard_InvalidValueRetriesSameField(t *testing.T) {
	m := newModel((&fileCapture{}).write)
	m = answer(t, m, "node server.js") // server accepted, now on privateKey

	m = answer(t, m, "deadbeef")
	assert.Equal(t, 1, m.idx)
	assert.Equal(t, []string{"must be at least 64 characters long"}, m.errs)

	m = answer(t, m, testKey)
	assert.Equal(t, 2, m.idx)
	assert.Empty(t, m.errs)
	require.NotNil(t, m.partial.PrivateKey)
	assert.Equal(t, testKey, *m.partial.PrivateKey)
}

// TestWizard_OptionalFieldSkipsOnEmpty verifies that empty input on an
// optional field records absence, not an empty value.
func TestWizard_OptionalFieldSkipsOnEmpty(t *testing.T) {
	m := newModel((&fileCapture{}).write)
	m = answer(t, m, "node server.js")
	m = answer(t, m, testKey)
	m = answer(t, m, "wss://a.example")

	m = answer(t, m, "") // public skipped

	assert.Equal(t, 4, m.idx)
	assert.Nil(t, m.partial.Public)
}

// TestWizard_BooleanAnswers verifies yes/no parsing and the retry on
// anything else.
func TestWizard_BooleanAnswers(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *bool
		errs     []string
	}{
		{"yes", "y", boolPtr(true), nil},
		{"spelled out no", "no", boolPtr(false), nil},
		{"garbage", "maybe", nil, []string{"answer y or n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel((&fileCapture{}).write)
			m = answer(t, m, "node server.js")
			m = answer(t, m, testKey)
			m = answer(t, m, "wss://a.example")

			m = answer(t, m, tt.raw)

			assert.Equal(t, tt.errs, m.errs)
			if tt.expected == nil {
				assert.Nil(t, m.partial.Public)
			} else {
				require.NotNil(t, m.partial.Public)
				assert.Equal(t, *tt.expected, *m.partial.Public)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

// ── confirmation and persistence ──────────────────────────────────────────────

// TestWizard_ConfirmWritesFile verifies that "y" at the review prompt writes
// the rendered document to gateway.json, truncating semantics included.
func TestWizard_ConfirmWritesFile(t *testing.T) {
	capture := &fileCapture{}
	m := completeAll(t, newModel(capture.write))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Equal(t, phaseSaved, m.phase)
	require.True(t, capture.written)
	assert.Equal(t, config.FileName, capture.name)
	assert.JSONEq(t, `{
		"server": ["node", "server.js", "--port", "3000"],
		"privateKey": "`+testKey+`",
		"relays": ["wss://a.example", "wss://b.example"],
		"public": true,
		"serverInfo": {"name": "demo gateway", "website": "https://example.com"},
		"allowedPublicKeys": ["aaa", "bbb"],
		"encryptionMode": "REQUIRED"
	}`, string(capture.data))
}

// TestWizard_DeclineDiscards verifies that "n" quits without writing.
func TestWizard_DeclineDiscards(t *testing.T) {
	capture := &fileCapture{}
	m := completeAll(t, newModel(capture.write))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.Equal(t, phaseAborted, m.phase)
	assert.False(t, capture.written)
	assert.NoError(t, m.writeErr)
}

func TestWizard_EscAborts(t *testing.T) {
	capture := &fileCapture{}
	m := newModel(capture.write)
	m = answer(t, m, "node server.js")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, phaseAborted, m.phase)
	assert.False(t, capture.written)
}

func TestWizard_WriteFailureSurfaces(t *testing.T) {
	capture := &fileCapture{err: assert.AnError}
	m := completeAll(t, newModel(capture.write))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	require.Error(t, m.writeErr)
	assert.ErrorIs(t, m.writeErr, assert.AnError)
}

// ── round trip ────────────────────────────────────────────────────────────────

// TestWizard_RoundTrip verifies the round-trip law: a configuration written
// by the wizard and re-loaded by the resolution engine with no environment
// or CLI overrides equals the value confirmed in the wizard.
func TestWizard_RoundTrip(t *testing.T) {
	capture := &fileCapture{}
	m := completeAll(t, newModel(capture.write))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.Equal(t, phaseSaved, m.phase)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, capture.name), capture.data, 0o600))

	cfg, err := config.Resolve(map[string]string{}, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "server.js", "--port", "3000"}, cfg.Server)
	assert.Equal(t, testKey, cfg.PrivateKey)
	assert.Equal(t, []string{"wss://a.example", "wss://b.example"}, cfg.Relays)
	assert.True(t, cfg.Public)
	require.NotNil(t, cfg.ServerInfo)
	assert.Equal(t, "demo gateway", cfg.ServerInfo.Name)
	assert.Empty(t, cfg.ServerInfo.Picture)
	assert.Equal(t, "https://example.com", cfg.ServerInfo.Website)
	assert.Equal(t, []string{"aaa", "bbb"}, cfg.AllowedPublicKeys)
	assert.Equal(t, config.EncryptionRequired, cfg.EncryptionMode)
}

// ── view ──────────────────────────────────────────────────────────────────────

func TestView_PromptShowsDescriptionAndHint(t *testing.T) {
	m := newModel((&fileCapture{}).write)
	m = answer(t, m, "node server.js")
	m = answer(t, m, testKey)
	m = answer(t, m, "wss://a.example")

	view := m.View() // public: boolean, optional

	assert.Contains(t, view, "Accept connections from any client key")
	assert.Contains(t, view, "y/n")
	assert.Contains(t, view, "optional, empty to skip")
}

func TestView_PromptShowsValidationErrors(t *testing.T) {
	m := newModel((&fileCapture{}).write)
	m = answer(t, m, "node server.js")
	m = answer(t, m, "deadbeef")

	assert.Contains(t, m.View(), "must be at least 64 characters long")
}

func TestView_ConfirmShowsRenderedDocument(t *testing.T) {
	m := completeAll(t, newModel((&fileCapture{}).write))

	view := m.View()
	assert.Contains(t, view, `"server"`)
	assert.Contains(t, view, config.FileName)
}
