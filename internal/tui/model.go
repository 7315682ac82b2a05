package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/kyotei-ai/kyotei-cli/internal/classify"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/kyotei-ai/kyotei-cli/internal/tui/themes"
)

// phase is which screen the TUI is showing.
type phase int

const (
	phaseVenuePick phase = iota
	phaseRacePick
	phaseAnalysis
)

// Model holds the TUI state. The analysis phase is driven entirely by one
// model.ViewState value: render paths branch on its kind and nothing else.
type Model struct {
	theme        themes.Theme
	state        model.ViewState
	venues       []string
	config       Config
	keymap       KeyMap
	spinner      spinner.Model
	sessionToken uuid.UUID
	venueIndex   int
	raceNumber   int
	width        int
	height       int
	phase        phase
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	m := Model{
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		spinner:    sp,
		venues:     model.Venues(),
		raceNumber: model.MinRaceNumber,
		phase:      phaseVenuePick,
		state:      model.ViewState{Kind: model.ViewLoading},
		width:      cfg.Width,
		height:     cfg.Height,
	}

	if cfg.Venue != "" {
		for i, venue := range m.venues {
			if venue == cfg.Venue {
				m.venueIndex = i
				break
			}
		}
	}
	if model.ValidRaceNumber(cfg.Race) {
		m.raceNumber = cfg.Race
	}

	// With a preselected race the pickers are skipped and the first
	// session starts from Init.
	if cfg.Venue != "" && model.ValidRaceNumber(cfg.Race) {
		m.phase = phaseAnalysis
		m.sessionToken = uuid.New()
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.phase == phaseAnalysis {
		return tea.Batch(tea.EnterAltScreen, m.analyzeCmd(m.sessionToken), m.spinner.Tick)
	}
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analysisResultMsg:
		if msg.token != m.sessionToken {
			// Result from a superseded session; the newer session owns
			// the state.
			return m, nil
		}
		m.state = msg.state
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseAnalysis && m.state.Kind == model.ViewLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseVenuePick:
		return m.handleVenueKey(msg)
	case phaseRacePick:
		return m.handleRaceKey(msg)
	case phaseAnalysis:
		return m.handleAnalysisKey(msg)
	}
	return m, nil
}

func (m Model) handleVenueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.venueIndex > 0 {
			m.venueIndex--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.venueIndex < len(m.venues)-1 {
			m.venueIndex++
		}
	case key.Matches(msg, m.keymap.Select):
		m.phase = phaseRacePick
	}
	return m, nil
}

func (m Model) handleRaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back):
		m.phase = phaseVenuePick
	case key.Matches(msg, m.keymap.Left), key.Matches(msg, m.keymap.Down):
		if m.raceNumber > model.MinRaceNumber {
			m.raceNumber--
		}
	case key.Matches(msg, m.keymap.Right), key.Matches(msg, m.keymap.Up):
		if m.raceNumber < model.MaxRaceNumber {
			m.raceNumber++
		}
	case key.Matches(msg, m.keymap.Select):
		m.phase = phaseAnalysis
		var cmd tea.Cmd
		m, cmd = m.startSession()
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, nil
}

func (m Model) handleAnalysisKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back):
		// Leaving the analysis discards the session; a fresh token means
		// any in-flight result is dropped on arrival.
		m.sessionToken = uuid.New()
		m.state = model.ViewState{Kind: model.ViewLoading}
		m.phase = phaseRacePick
		return m, nil
	case key.Matches(msg, m.keymap.Retry):
		if m.state.Terminal() {
			var cmd tea.Cmd
			m, cmd = m.startSession()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
	}
	return m, nil
}

// startSession begins a new analysis session for the current selection and
// returns the command that resolves it.
func (m Model) startSession() (Model, tea.Cmd) {
	token := uuid.New()
	m.sessionToken = token
	m.state = model.ViewState{Kind: model.ViewLoading}
	return m, m.analyzeCmd(token)
}

// analyzeCmd issues the analyze request for the current selection. The
// resulting message carries the session token so stale results can be
// recognized and dropped.
func (m Model) analyzeCmd(token uuid.UUID) tea.Cmd {
	analyzer := m.config.Analyzer
	venue := m.venues[m.venueIndex]
	race := m.raceNumber

	return func() tea.Msg {
		resp, err := analyzer.Analyze(context.Background(), venue, race)
		return analysisResultMsg{token: token, state: classify.Classify(resp, err)}
	}
}

// selectedVenue returns the venue the cursor is on.
func (m Model) selectedVenue() string {
	return m.venues[m.venueIndex]
}
