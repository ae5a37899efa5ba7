package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"quadrant-cli/internal/model"
	"quadrant-cli/internal/store"
)

func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.mode == modeFocusPick {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.picker.View())
	}
	switch m.screen {
	case screenArchived:
		return m.historyView("Archived", store.ArchivedTasks(m.db))
	case screenDeleted:
		return m.historyView("Deleted", store.DeletedTasks(m.db))
	}
	return m.boardView()
}

func (m *appModel) boardView() string {
	qw := max(20, m.width/2-3)
	qh := max(4, (m.height-5)/2)

	quads := make([]string, len(model.Urgencies))
	for qi := range model.Urgencies {
		quads[qi] = m.renderQuadrant(qi, qw, qh)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, quads[0], quads[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, quads[2], quads[3])

	return strings.Join([]string{
		m.headerView(),
		lipgloss.JoinVertical(lipgloss.Left, top, bottom),
		m.footerView(),
	}, "\n")
}

func (m *appModel) headerView() string {
	var chips []string
	for _, id := range m.selectedIDs() {
		name := m.matrixName(id)
		if id == m.sel.FocusMatrixID {
			name = "◎ " + name
		}
		chips = append(chips, styleChip.Render(name))
	}
	line := styleTitle.Render("quadrant") + "  " + strings.Join(chips, "")
	return ansi.Truncate(line, m.width, "…")
}

func (m *appModel) renderQuadrant(qi, w, h int) string {
	u := model.Urgencies[qi]
	rows := m.visibleRows(qi)
	showBadges := m.sel.ShowBadges(m.db.Matrices)

	limit := len(rows)
	if m.cfg.TasksPerQuadrant > 0 && m.cfg.TasksPerQuadrant < limit {
		limit = m.cfg.TasksPerQuadrant
	}
	if maxRows := h - 1; limit > maxRows {
		limit = maxRows
	}

	lines := []string{urgencyTitleStyle(string(u)).Render(string(u))}
	for i := 0; i < limit; i++ {
		selected := m.screen == screenBoard && qi == m.quadrant && i == m.row
		lines = append(lines, m.renderRow(rows[i], selected, showBadges, w-2))
	}
	if hidden := len(rows) - limit; hidden > 0 {
		lines = append(lines, faintIfDark(styleMuted).Render(fmt.Sprintf("+ %d more", hidden)))
	}
	if len(rows) == 0 {
		lines = append(lines, faintIfDark(styleMuted).Render("(empty)"))
	}

	return quadrantStyle(qi == m.quadrant, w, h).Render(strings.Join(lines, "\n"))
}

func (m *appModel) renderRow(t model.Task, selected, showBadges bool, w int) string {
	box := "[ ]"
	if t.Status == model.StatusCompleted {
		box = "[x]"
	}
	marker := "  "
	if selected {
		marker = "› "
	}

	// Held and cursor rows get a background; backgrounds don't nest with
	// inner styling, so those rows render plain text.
	if t.ID == m.heldID {
		return styleHeld.Render(ansi.Truncate(marker+box+" "+m.plainRowText(t, showBadges), w, "…"))
	}
	if selected {
		return styleSel.Render(ansi.Truncate(marker+box+" "+m.plainRowText(t, showBadges), w, "…"))
	}

	text := t.Text
	if t.Status == model.StatusCompleted {
		text = styleDone.Render(text)
	}
	if showBadges {
		text += " " + styleBadge.Render("·"+m.matrixName(t.MatrixID))
	}
	return ansi.Truncate(marker+box+" "+text, w, "…")
}

func (m *appModel) plainRowText(t model.Task, showBadges bool) string {
	if showBadges {
		return t.Text + " ·" + m.matrixName(t.MatrixID)
	}
	return t.Text
}

func (m *appModel) footerView() string {
	switch m.mode {
	case modeAddTask:
		ctx := fmt.Sprintf("add → %s / %s ", m.matrixName(m.draftMatrix), m.draftUrgency)
		return styleMuted.Render(ctx) + m.input.View() + "\n" +
			faintIfDark(styleMuted).Render("enter add · tab urgency · esc keep draft")
	case modeEditTask:
		return styleMuted.Render("edit ") + m.input.View() + "\n" +
			faintIfDark(styleMuted).Render("enter save · esc discard")
	case modeAddMatrix:
		return styleMuted.Render("new matrix ") + m.input.View() + "\n" +
			faintIfDark(styleMuted).Render("enter create · esc cancel")
	}

	hints := "space hold/drop · enter done · a add · e edit · x archive · d delete · f focus · A/X history · q quit"
	if m.heldID != 0 {
		hints = "holding: space drop on row · H/M/L/N drop on quadrant · esc cancel"
	}
	line := faintIfDark(styleMuted).Render(ansi.Truncate(hints, m.width, "…"))
	if m.status != "" {
		line += "\n" + lipgloss.NewStyle().Foreground(colorDanger).Render(ansi.Truncate(m.status, m.width, "…"))
	}
	return line
}

func (m *appModel) historyView(title string, rows []model.Task) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(title) + styleMuted.Render(fmt.Sprintf("  %d tasks", len(rows))) + "\n\n")

	maxRows := max(1, m.height-6)
	start := 0
	if m.histRow >= maxRows {
		start = m.histRow - maxRows + 1
	}
	for i := start; i < len(rows) && i < start+maxRows; i++ {
		t := rows[i]
		stamp := t.ArchivedAt
		if title == "Deleted" {
			stamp = t.DeletedAt
		}
		when := t.CreatedTime()
		if stamp != nil {
			when = *stamp
		}
		line := fmt.Sprintf("%s  %s %s", when.Format("2006-01-02 15:04"), t.Text,
			styleBadge.Render("·"+m.matrixName(t.MatrixID)))
		if i == m.histRow {
			line = styleSel.Render(ansi.Truncate(fmt.Sprintf("› %s  %s ·%s",
				when.Format("2006-01-02 15:04"), t.Text, m.matrixName(t.MatrixID)), m.width-2, "…"))
		} else {
			line = "  " + ansi.Truncate(line, m.width-4, "…")
		}
		b.WriteString(line + "\n")
	}
	if len(rows) == 0 {
		b.WriteString(faintIfDark(styleMuted).Render("  (nothing here)") + "\n")
	}

	hints := "j/k move · C clear all · esc back · q quit"
	if title == "Archived" {
		hints = "j/k move · u unarchive · d delete · esc back · q quit"
	}
	b.WriteString("\n" + faintIfDark(styleMuted).Render(hints))
	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorDanger).Render(m.status))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
