// Package statsui provides the Bubble Tea viewer for sorted-name reports.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sortednames/internal/stats"
)

const (
	tabChart = iota
	tabYears
	tabTop
)

const (
	minChartHeight = 4
	chartChrome    = 8
	defaultWidth   = 80
)

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
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report viewer.
type Model struct {
	report stats.Report
	chart  stats.ChartOptions
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	yearTable table.Model

	width  int
	height int
}

// NewModel constructs a viewer for report. chart supplies titles; its size is
// derived from the window.
func NewModel(report stats.Report, chart stats.ChartOptions) *Model {
	m := &Model{
		report: report,
		chart:  chart,
		tabs:   []string{"Chart", "Years", "Top Names"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.yearTable = buildYearTable(report, defaultWidth, 1)
	m.renderTabContents()
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
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "n":
			opts := m.report.Options
			opts.Normalize = !opts.Normalize
			m.resummarize(opts)
			return m, nil
		case "=":
			opts := m.report.Options
			opts.LabelPeriod = nextLabelPeriod(opts.LabelPeriod)
			m.resummarize(opts)
			return m, nil
		case "-":
			opts := m.report.Options
			opts.LabelPeriod = prevLabelPeriod(opts.LabelPeriod)
			m.resummarize(opts)
			return m, nil
		case "g", "home":
			if m.activeTab == tabYears {
				m.yearTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabYears {
				m.yearTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabYears {
				var cmd tea.Cmd
				m.yearTable, cmd = m.yearTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) resummarize(opts stats.Options) {
	report, err := m.report.Resummarize(context.Background(), opts)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
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
	m.yearTable.SetWidth(m.width)
	m.yearTable.SetHeight(maxInt(1, vpHeight-1))
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
	if m.activeTab == tabYears {
		m.yearTable.Focus()
	} else {
		m.yearTable.Blur()
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

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderSettings(), m.width)
}

func (m *Model) renderSettings() string {
	metric := "records"
	if m.report.Options.Normalize {
		metric = "births"
	}
	period := "off"
	if m.report.Options.LabelPeriod > 0 {
		period = fmt.Sprintf("%d", m.report.Options.LabelPeriod)
	}
	summary := fmt.Sprintf("Settings: metric=%s  label-period=%s  years=%d  skipped=%d",
		metric, period, len(m.report.Series.Points), len(m.report.Series.Skipped))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Metric: n  Label period: -/=  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.activeTab == tabYears {
		if len(m.report.Series.Points) == 0 {
			return "No years found."
		}
		return tableMutedStyle.Render(m.yearTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewports[tabChart].SetContent(renderChart(m.report, m.chart, width, bodyHeight))
	m.viewports[tabTop].SetContent(renderTop(m.report))
	cols, rows := buildYearTableData(m.report)
	m.yearTable.SetColumns(cols)
	m.yearTable.SetRows(rows)
}

func renderChart(report stats.Report, opts stats.ChartOptions, width, bodyHeight int) string {
	opts.Width = stats.PlotWidthFor(width)
	opts.Height = maxInt(minChartHeight, bodyHeight-chartChrome)
	opts.Color = true
	var buf bytes.Buffer
	if err := stats.RenderChart(&buf, report.Series, opts); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderTop(report stats.Report) string {
	var buf bytes.Buffer
	buf.WriteString(headerStyle.Render(fmt.Sprintf("Longest sorted names in %s", report.NamePath)))
	buf.WriteString("\n\n")
	if err := stats.RenderTopNames(&buf, report.Top); err != nil {
		return fmt.Sprintf("Failed to render names: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildYearTable(report stats.Report, width, height int) table.Model {
	cols, rows := buildYearTableData(report)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(yearTableStyles())
	return t
}

func buildYearTableData(report stats.Report) ([]table.Column, []table.Row) {
	headers := stats.SeriesHeaders()
	data := stats.SeriesRows(report.Series)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		w := lipgloss.Width(h)
		for _, row := range data {
			w = maxInt(w, lipgloss.Width(row[i]))
		}
		columns[i] = table.Column{Title: h, Width: w}
	}
	rows := make([]table.Row, 0, len(data))
	for _, row := range data {
		rows = append(rows, table.Row(row))
	}
	return columns, rows
}

func yearTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextLabelPeriod(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

// prevLabelPeriod steps down by five; zero turns labels off.
func prevLabelPeriod(n int) int {
	if n <= 5 {
		return 0
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
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
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
