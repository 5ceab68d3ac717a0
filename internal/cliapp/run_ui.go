package cliapp

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/da11an/repo-query-surface/internal/history"
	"github.com/da11an/repo-query-surface/internal/insights"
)

func runUI(r *runner, rep *insights.Report, trend []history.TrendPoint) error {
	m := initialModel(rep, trend)
	p := tea.NewProgram(m, tea.WithAltScreen())

	r.setUpdateHandler(func(rep *insights.Report) {
		p.Send(updateMsg{rep: rep})
	})

	_, err := p.Run()
	return err
}
