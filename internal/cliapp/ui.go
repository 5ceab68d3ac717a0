package cliapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/da11an/repo-query-surface/internal/history"
	"github.com/da11an/repo-query-surface/internal/insights"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	fileList   list.Model
	cycleList  list.Model
	mode       panelMode
	rep        *insights.Report
	trend      []history.TrendPoint
	showTrend  bool
	showLayers bool
	lastUpdate time.Time

	sourceJumpStatus string
}

type panelMode int

const (
	panelFiles panelMode = iota
	panelCycles
)

type updateMsg struct {
	rep *insights.Report
}

type sourceJumpResultMsg struct {
	target string
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := msg.Width - h
		height := msg.Height - v - 8
		if height < 5 {
			height = 5
		}
		m.fileList.SetSize(width, height)
		m.cycleList.SetSize(width, height)
	case updateMsg:
		m = applyReport(m, msg.rep)
	case sourceJumpResultMsg:
		if msg.err != nil {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Source jump failed: %v", msg.err))
		} else {
			m.sourceJumpStatus = statusStyle.Render(fmt.Sprintf("Opened source: %s", msg.target))
		}
	}

	var cmd tea.Cmd
	if m.mode == panelFiles {
		m.fileList, cmd = m.fileList.Update(msg)
	} else {
		m.cycleList, cmd = m.cycleList.Update(msg)
	}
	return m, cmd
}

func applyReport(m model, rep *insights.Report) model {
	m.rep = rep
	m.lastUpdate = time.Now()
	m.sourceJumpStatus = ""
	if rep == nil {
		return m
	}

	fileItems := make([]list.Item, 0, len(rep.KeyFiles))
	for _, f := range rep.KeyFiles {
		fileItems = append(fileItems, item{
			title: f.Path,
			desc: fmt.Sprintf(
				"fan_in=%d fan_out=%d layer=%d score=%.2f",
				f.FanIn, f.FanOut, f.Layer, f.Score,
			),
		})
	}
	m.fileList.SetItems(fileItems)

	cycleItems := make([]list.Item, 0, len(rep.Cycles))
	for _, c := range rep.Cycles {
		cycleItems = append(cycleItems, item{
			title: "Circular Import",
			desc:  strings.Join(c, " -> "),
		})
	}
	m.cycleList.SetItems(cycleItems)

	return m
}

func (m model) View() string {
	var fileCount, edgeCount, cycleCount int
	language := "unknown"
	if m.rep != nil {
		fileCount = m.rep.FileCount
		edgeCount = m.rep.EdgeCount
		cycleCount = m.rep.CycleCount
		language = m.rep.Language
	}

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d edges | %s",
		m.lastUpdate.Format("15:04:05"), fileCount, edgeCount, language))

	var summary string
	if cycleCount == 0 {
		summary = successStyle.Render("No cycles")
	} else {
		summary = cycleStyle.Render(fmt.Sprintf("%d cycles", cycleCount))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Import Topology Monitor"), status, summary)
	help := renderHelp(m)

	body := m.fileList.View()
	if m.mode == panelCycles {
		body = m.cycleList.View()
	}
	if m.showLayers {
		body += "\n\n" + renderLayerOverlay(m.rep)
	}
	if m.showTrend {
		body += "\n\n" + renderTrendOverlay(m.trend)
	}
	if m.sourceJumpStatus != "" {
		body += "\n\n" + m.sourceJumpStatus
	}

	return docStyle.Render(header + "\n" + help + "\n\n" + body)
}

func initialModel(rep *insights.Report, trend []history.TrendPoint) model {
	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Key Files"
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(true)

	cycleList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	cycleList.Title = "Cycles"
	cycleList.SetShowStatusBar(false)
	cycleList.SetFilteringEnabled(true)

	m := model{
		fileList:   fileList,
		cycleList:  cycleList,
		mode:       panelFiles,
		trend:      trend,
		lastUpdate: time.Now(),
	}
	return applyReport(m, rep)
}
