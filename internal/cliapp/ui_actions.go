package cliapp

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelFiles {
			m.mode = panelCycles
		} else {
			m.mode = panelFiles
		}
		return m, nil
	case "t":
		m.showTrend = !m.showTrend
		return m, nil
	case "l":
		m.showLayers = !m.showLayers
		return m, nil
	case "esc":
		m.showTrend = false
		m.showLayers = false
		m.sourceJumpStatus = ""
	case "o":
		if m.mode != panelFiles {
			break
		}
		target, ok := selectedSourcePath(m)
		if !ok {
			m.sourceJumpStatus = statusStyle.Render("No source target available.")
			return m, nil
		}
		return m, jumpToSourceCmd(target)
	}

	var cmd tea.Cmd
	if m.mode == panelFiles {
		m.fileList, cmd = m.fileList.Update(msg)
	} else {
		m.cycleList, cmd = m.cycleList.Update(msg)
	}
	return m, cmd
}

func selectedSourcePath(m model) (string, bool) {
	if m.rep == nil || len(m.rep.KeyFiles) == 0 {
		return "", false
	}
	idx := m.fileList.Index()
	if idx < 0 || idx >= len(m.rep.KeyFiles) {
		idx = 0
	}
	path := m.rep.KeyFiles[idx].Path
	if path == "" {
		return "", false
	}
	return filepath.Join(m.rep.Root, filepath.FromSlash(path)), true
}

func jumpToSourceCmd(target string) tea.Cmd {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, target)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return sourceJumpResultMsg{target: target, err: err}
	})
}
