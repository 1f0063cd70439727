// Package tui provides the Bubble Tea experiment interface.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/experiment"
	"github.com/verte-zerg/chartab/internal/model"
	"github.com/verte-zerg/chartab/internal/stats"
)

const (
	tabExperiment = iota
	tabResults
	tabTrends
	tabComparison
)

const defaultLoadTimeout = 15 * time.Second

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6CC070"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8A33D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// dataLoadedMsg carries the outcome of a dataset load.
type dataLoadedMsg struct {
	result dataset.Result
}

// Model implements the Bubble Tea experiment UI.
type Model struct {
	loader      *dataset.Loader
	session     *experiment.Session
	logger      *zap.Logger
	loadTimeout time.Duration
	useColor    bool

	loading bool
	data    dataset.Result
	counts  model.PaymentCounts
	dataErr error

	report     stats.Report
	answerNote string

	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithLoadTimeout bounds each dataset load.
func WithLoadTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.loadTimeout = d
		}
	}
}

// WithColor enables colored charts and plots.
func WithColor(enabled bool) Option {
	return func(m *Model) {
		m.useColor = enabled
	}
}

// NewModel constructs an experiment UI model. The dataset is loaded by
// the command returned from Init.
func NewModel(loader *dataset.Loader, session *experiment.Session, opts ...Option) *Model {
	m := &Model{
		loader:      loader,
		session:     session,
		logger:      zap.NewNop(),
		loadTimeout: defaultLoadTimeout,
		loading:     true,
		tabs:        []string{"Experiment", "Results", "Response Time Trends", "Chart Type Comparison"},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initViewports()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refresh()
		return m, nil
	case dataLoadedMsg:
		m.applyData(msg.result)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "s":
			// The timer starts with the chart, so no trial while loading.
			if m.loading {
				return m, nil
			}
			if m.session.Start() {
				m.answerNote = ""
				m.activeTab = tabExperiment
				m.refresh()
			}
			return m, nil
		case " ", "space", "enter":
			if m.session.Answer() {
				if trial, ok := m.session.Current(); ok {
					m.answerNote = answerMessage(trial)
				}
				m.refresh()
			}
			return m, nil
		case "n":
			if m.loading {
				return m, nil
			}
			if m.session.Retry() {
				m.answerNote = ""
				m.activeTab = tabExperiment
				m.refresh()
			}
			return m, tea.ClearScreen
		case "r":
			m.session.Reset()
			m.answerNote = ""
			m.activeTab = tabExperiment
			m.refresh()
			return m, tea.ClearScreen
		case "f":
			if m.loading || m.session.State() == experiment.StatePresented {
				return m, nil
			}
			m.loader.Invalidate()
			m.loading = true
			m.refresh()
			return m, m.loadCmd()
		case "tab", "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "shift+tab", "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) loadCmd() tea.Cmd {
	loader := m.loader
	timeout := m.loadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return dataLoadedMsg{result: loader.Load(ctx)}
	}
}

func (m *Model) applyData(result dataset.Result) {
	m.loading = false
	m.data = result
	m.counts, m.dataErr = dataset.Aggregate(result.Records)
	if result.Warning != "" {
		m.logger.Warn("dataset fallback in use",
			zap.String("source", result.Source),
			zap.String("origin", string(result.Origin)))
	}
	m.logger.Info("dataset loaded",
		zap.String("source", result.Source),
		zap.String("origin", string(result.Origin)),
		zap.Int("records", len(result.Records)))
}

// refresh recomputes the report and every tab from the current state.
func (m *Model) refresh() {
	m.report = stats.BuildReport(m.session.Completed())
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	if m.statusLine() != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) contentHeight() int {
	_, bodyHeight, _ := m.layoutHeights()
	if m.height <= 0 {
		return 24
	}
	return bodyHeight
}
