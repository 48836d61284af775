// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/quiz"
	"github.com/verte-zerg/jazzquiz/internal/stats"
	"github.com/verte-zerg/jazzquiz/internal/store"
)

const (
	tabOverview = iota
	tabKeyTable
	tabKeyCurves
)

const defaultCurveKeys = 5

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report    stats.Report
	errMsg    string
	keyErrMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	keyTable  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	keySelection       []string
	keySelectionCustom bool
	keyPerSession      map[int64]map[string]model.KeyAggregate

	keyInputMode  bool
	keyInput      textinput.Model
	keyInputError string
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Key Table", "Key Curves"},
	}
	m.initInputs()
	m.keyInput = newFilterInput("Keys: ")
	m.keyInput.Placeholder = "C Db F#"
	m.keyTable = table.New(table.WithColumns(keyColumns()), table.WithHeight(1))
	m.keyTable.SetStyles(keyTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.keyInputMode {
			return m.updateKeyInput(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabKeyCurves {
				return m.startKeyInput()
			}
			return m, nil
		}
		if m.activeTab == tabKeyTable {
			var cmd tea.Cmd
			m.keyTable, cmd = m.keyTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.keyInputMode {
		return m.renderKeyModal()
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs()+"\n"+m.renderFilterSummary(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Mode: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.Mode)
	m.filterInputs[1].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[2].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.keyTable.SetWidth(m.width)
	m.keyTable.SetHeight(max(1, bodyHeight-1))
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
	m.keyInput.Width = max(10, modalWidth(m.width)-6-lipgloss.Width(m.keyInput.Prompt))
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabKeyTable {
		m.keyTable.Focus()
	} else {
		m.keyTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	mode := m.cfg.Mode
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: mode=%s  since=%s  last=%s  window=%d", mode, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := "Nav: left/right  Scroll: up/down  Window: -/=  Settings: /  Quit: q"
	if m.activeTab == tabKeyCurves {
		help = "Nav: left/right  Scroll: up/down  Edit keys: enter  Window: -/=  Settings: /  Quit: q"
	}
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render(help)
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabKeyTable {
		switch {
		case len(m.report.Sessions) == 0:
			return "No sessions found."
		case len(m.report.KeyAggsAll) == 0:
			return "No key stats found."
		}
		return tableMutedStyle.Render(m.keyTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	if !m.keySelectionCustom {
		m.keySelection = stats.TopKeysByFrequency(report.KeyAggsAll, defaultCurveKeys)
	}
	m.loadKeyPerSession()
	m.keyTable.SetRows(keyRows(report.KeyAggsAll))
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report.Sessions, m.cfg.CurveWindow, width))
	m.viewports[tabKeyCurves].SetContent(renderKeyCurves(m.report.Sessions, m.keySelection, m.keyPerSession, m.cfg.CurveWindow, width, m.keyErrMsg))
}

func renderOverview(sessions []model.SessionAggregate, window, width int) string {
	if len(sessions) == 0 {
		return "No sessions found."
	}
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, sessions, window, width); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(renderSummaryCards(sessions, width)+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(sessions []model.SessionAggregate, width int) string {
	var totalAcc, totalRate, bestAcc float64
	xp := 0
	for _, s := range sessions {
		acc, rate := stats.SessionMetrics(s.Correct, s.Incorrect, s.DurationMs)
		totalAcc += acc
		totalRate += rate
		bestAcc = max(bestAcc, acc)
		xp += s.XPEarned
	}
	count := float64(len(sessions))
	cards := []string{
		metricCard("Sessions", strconv.Itoa(len(sessions))),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", totalAcc/count*100)),
		metricCard("Best Acc", fmt.Sprintf("%.1f%%", bestAcc*100)),
		metricCard("Questions/min", fmt.Sprintf("%.2f", totalRate/count)),
		metricCard("XP", strconv.Itoa(xp)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func renderKeyCurves(sessions []model.SessionAggregate, keys []string, perSession map[int64]map[string]model.KeyAggregate, window, width int, errMsg string) string {
	if len(sessions) == 0 {
		return "No sessions found."
	}
	if errMsg != "" {
		return "Failed to load key curves: " + errMsg
	}
	if len(keys) == 0 {
		return "No keys selected. Press Enter to set keys."
	}
	var buf bytes.Buffer
	if err := stats.RenderKeyCurves(&buf, sessions, perSession, keys, window, width); err != nil {
		return fmt.Sprintf("Failed to render key curves: %v", err)
	}
	header := headerStyle.Render("Keys: " + strings.Join(keys, ", "))
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func keyColumns() []table.Column {
	return []table.Column{
		{Title: "Key", Width: 4},
		{Title: "Bucket", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
		{Title: "Total", Width: 6},
	}
}

// keyRows lists keys by ascending accuracy so the weakest come first.
func keyRows(aggs []model.KeyAggregate) []table.Row {
	sorted := append([]model.KeyAggregate(nil), aggs...)
	sort.Slice(sorted, func(i, j int) bool {
		ai, aj := keyAccuracy(sorted[i]), keyAccuracy(sorted[j])
		if ai == aj {
			return sorted[i].Key < sorted[j].Key
		}
		return ai < aj
	})
	rows := make([]table.Row, 0, len(sorted))
	for _, agg := range sorted {
		bucket := "-"
		if d, ok := cadence.KeyDifficulty(agg.Key); ok {
			bucket = d.String()
		}
		rows = append(rows, table.Row{
			agg.Key,
			bucket,
			fmt.Sprintf("%.1f%%", keyAccuracy(agg)*100),
			strconv.Itoa(agg.Correct),
			strconv.Itoa(agg.Incorrect),
			strconv.Itoa(agg.Correct + agg.Incorrect),
		})
	}
	return rows
}

func keyAccuracy(agg model.KeyAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 0
	}
	return float64(agg.Correct) / float64(total)
}

func keyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := m.parseFilter()
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) parseFilter() (model.StatsConfig, error) {
	cfg := m.cfg
	mode := strings.TrimSpace(m.filterInputs[0].Value())
	if mode != "" {
		if _, ok := quiz.ParseMode(mode); !ok {
			return cfg, fmt.Errorf("unknown mode %q", mode)
		}
	}
	cfg.Mode = mode

	cfg.Since = nil
	if input := strings.TrimSpace(m.filterInputs[1].Value()); input != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}

	cfg.Last = 0
	if input := strings.TrimSpace(m.filterInputs[2].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}

	if input := strings.TrimSpace(m.filterInputs[3].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func (m *Model) startKeyInput() (tea.Model, tea.Cmd) {
	m.keyInputMode = true
	m.keyInputError = ""
	m.keyInput.SetValue(strings.Join(m.keySelection, " "))
	return m, m.keyInput.Focus()
}

func (m *Model) updateKeyInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.keyInputMode = false
		m.keyInputError = ""
		return m, nil
	case tea.KeyEnter:
		keys, err := parseKeys(m.keyInput.Value())
		if err != nil {
			m.keyInputError = err.Error()
			return m, nil
		}
		if len(keys) == 0 {
			m.keySelectionCustom = false
			m.keySelection = stats.TopKeysByFrequency(m.report.KeyAggsAll, defaultCurveKeys)
		} else {
			m.keySelectionCustom = true
			m.keySelection = keys
		}
		m.keyInputMode = false
		m.keyInputError = ""
		m.loadKeyPerSession()
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// parseKeys accepts key names separated by spaces or commas.
func parseKeys(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	seen := map[string]bool{}
	for _, f := range fields {
		if _, ok := cadence.KeyDifficulty(f); !ok {
			return nil, fmt.Errorf("unknown key %q", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *Model) renderKeyModal() string {
	body := []string{
		cardValueStyle.Render("Select Keys"),
		m.keyInput.View(),
		headerStyle.Render("Key names separated by spaces. Empty for the most practiced."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.keyInputError != "" {
		body = append(body, errorStyle.Render(m.keyInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) loadKeyPerSession() {
	m.keyErrMsg = ""
	m.keyPerSession = nil
	if len(m.report.Sessions) == 0 || len(m.keySelection) == 0 {
		return
	}
	ids := make([]int64, len(m.report.Sessions))
	for i, s := range m.report.Sessions {
		ids[i] = s.SessionID
	}
	perSession, err := m.store.ListKeyStatsForSessions(context.Background(), ids, m.keySelection)
	if err != nil {
		m.keyErrMsg = err.Error()
		return
	}
	m.keyPerSession = perSession
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
