package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quadrant-cli/internal/config"
	"quadrant-cli/internal/dnd"
	"quadrant-cli/internal/model"
	"quadrant-cli/internal/mutate"
	"quadrant-cli/internal/store"
	"quadrant-cli/internal/view"
)

type screen int

const (
	screenBoard screen = iota
	screenArchived
	screenDeleted
)

type mode int

const (
	modeNormal mode = iota
	modeAddTask
	modeEditTask
	modeAddMatrix
	modeFocusPick
)

type appModel struct {
	s   store.Store
	db  *store.DB
	cfg config.Config
	sel *view.Selection

	screen screen
	mode   mode

	quadrant int // index into model.Urgencies
	row      int
	histRow  int

	// heldID is the picked-up task during a keyboard drag; 0 when idle.
	heldID int64

	input textinput.Model
	edit  mutate.EditSession

	// The new-task draft survives a cancelled prompt. While its text is
	// empty the matrix follows the last-selected matrix; a draft in
	// progress never has its matrix switched out from under it.
	draftText    string
	draftMatrix  string
	draftUrgency model.Urgency

	picker list.Model

	width  int
	height int
	status string
}

func newApp(s store.Store, db *store.DB, cfg config.Config) *appModel {
	sel := view.NewSelection()
	scr := screenBoard
	if st, err := s.LoadTUIState(); err == nil && st != nil && st.View != "" {
		sel.ActivePinnedIDs = st.ActivePinnedIDs
		sel.FocusMatrixID = st.FocusMatrixID
		sel.ViewOrderIDs = st.ViewOrderIDs
		if st.LastSelectedID != "" {
			sel.LastSelectedMatrixID = st.LastSelectedID
		}
		switch st.View {
		case "archived":
			scr = screenArchived
		case "deleted":
			scr = screenDeleted
		}
	}
	sel.Heal(db.Matrices)

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 500

	return &appModel{
		s:            s,
		db:           db,
		cfg:          cfg,
		sel:          sel,
		screen:       scr,
		input:        in,
		draftMatrix:  sel.LastSelectedMatrixID,
		draftUrgency: cfg.Urgency(),
	}
}

func (m *appModel) Init() tea.Cmd {
	return nil
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.mode == modeFocusPick {
			m.picker.SetSize(m.pickerWidth(), m.pickerHeight())
		}
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAddTask, modeEditTask, modeAddMatrix:
			return m.updateTyping(msg)
		case modeFocusPick:
			return m.updatePicker(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.status = ""

	if m.screen != screenBoard {
		return m.updateHistory(key)
	}

	switch key {
	case "q", "ctrl+c":
		m.saveUIState()
		return m, tea.Quit
	case "tab", "right", "l":
		m.quadrant = (m.quadrant + 1) % len(model.Urgencies)
		m.clampRow()
	case "shift+tab", "left", "h":
		m.quadrant = (m.quadrant + len(model.Urgencies) - 1) % len(model.Urgencies)
		m.clampRow()
	case "down", "j":
		m.row++
		m.clampRow()
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "esc":
		m.heldID = 0
	case " ":
		m.toggleHold()
	case "H", "M", "L", "N":
		m.dropOnQuadrant(key)
	case "enter":
		if t := m.cursorTask(); t != nil {
			if res, err := mutate.ToggleComplete(m.db, t.ID); err == nil && res.Changed {
				m.persist()
			}
		}
	case "a":
		return m, m.startAddTask()
	case "e":
		return m, m.startEditTask()
	case "x":
		if t := m.cursorTask(); t != nil {
			if res, err := mutate.ArchiveTask(m.db, t.ID); err == nil && res.Changed {
				m.afterStructural()
			}
		}
	case "d":
		if t := m.cursorTask(); t != nil {
			if res, err := mutate.DeleteTask(m.db, &m.edit, t.ID); err == nil && res.Changed {
				m.afterStructural()
			}
		}
	case "f":
		m.openFocusPicker()
	case "F":
		m.sel.ClearFocus()
		m.heldID = 0
		m.clampRow()
		m.saveUIState()
	case "+":
		return m, m.startAddMatrix()
	case "A":
		m.switchScreen(screenArchived)
	case "X":
		m.switchScreen(screenDeleted)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.togglePinnedAt(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m *appModel) updateHistory(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.saveUIState()
		return m, tea.Quit
	case "esc", "b":
		m.switchScreen(screenBoard)
	case "A":
		m.switchScreen(screenArchived)
	case "X":
		m.switchScreen(screenDeleted)
	case "down", "j":
		m.histRow++
		m.clampHistRow()
	case "up", "k":
		if m.histRow > 0 {
			m.histRow--
		}
	case "u":
		if m.screen != screenArchived {
			break
		}
		rows := store.ArchivedTasks(m.db)
		if m.histRow < len(rows) {
			if res, err := mutate.UnarchiveTask(m.db, rows[m.histRow].ID); err == nil && res.Changed {
				m.persist()
				m.clampHistRow()
			}
		}
	case "d":
		if m.screen != screenArchived {
			break
		}
		rows := store.ArchivedTasks(m.db)
		if m.histRow < len(rows) {
			if res, err := mutate.DeleteTask(m.db, &m.edit, rows[m.histRow].ID); err == nil && res.Changed {
				m.persist()
				m.clampHistRow()
			}
		}
	case "C":
		if m.screen != screenDeleted {
			break
		}
		if mutate.PurgeDeleted(m.db) > 0 {
			m.persist()
			m.histRow = 0
		}
	}
	return m, nil
}

func (m *appModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		switch m.mode {
		case modeAddTask:
			m.draftText = m.input.Value()
		case modeEditTask:
			m.edit.Cancel()
		}
		m.closeInput()
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	case "tab":
		if m.mode == modeAddTask {
			m.draftUrgency = nextUrgency(m.draftUrgency)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeEditTask {
		m.edit.Change(m.input.Value())
	}
	return m, cmd
}

func (m *appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "q":
			m.mode = modeNormal
			return m, nil
		case "enter":
			if it, ok := m.picker.SelectedItem().(matrixItem); ok {
				m.sel.SetFocus(it.m.ID)
				m.clampRow()
				m.saveUIState()
			}
			m.mode = modeNormal
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *appModel) toggleHold() {
	t := m.cursorTask()
	if m.heldID == 0 {
		if t != nil {
			m.heldID = t.ID
		}
		return
	}
	var target dnd.Target
	if t != nil {
		target = dnd.TaskTarget(t.ID)
	} else {
		target = dnd.QuadrantTarget(model.Urgencies[m.quadrant])
	}
	if dnd.DragEnd(m.db, m.selectedIDs(), m.heldID, &target) != dnd.OutcomeNone {
		m.persist()
	}
	m.heldID = 0
	m.clampRow()
}

func (m *appModel) dropOnQuadrant(key string) {
	if m.heldID == 0 {
		return
	}
	u, ok := map[string]model.Urgency{
		"H": model.UrgencyHigh,
		"M": model.UrgencyMedium,
		"L": model.UrgencyLow,
		"N": model.UrgencyNone,
	}[key]
	if !ok {
		return
	}
	target := dnd.QuadrantTarget(u)
	if dnd.DragEnd(m.db, m.selectedIDs(), m.heldID, &target) != dnd.OutcomeNone {
		m.persist()
	}
	m.heldID = 0
	m.clampRow()
}

func (m *appModel) startAddTask() tea.Cmd {
	if m.draftText == "" {
		m.draftMatrix = m.sel.LastSelectedMatrixID
	}
	m.mode = modeAddTask
	m.input.SetValue(m.draftText)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *appModel) startEditTask() tea.Cmd {
	t := m.cursorTask()
	if t == nil {
		return nil
	}
	if err := m.edit.Start(m.db, t.ID); err != nil {
		return nil
	}
	m.mode = modeEditTask
	m.input.SetValue(m.edit.Draft)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *appModel) startAddMatrix() tea.Cmd {
	m.mode = modeAddMatrix
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *appModel) commitInput() {
	text := m.input.Value()
	switch m.mode {
	case modeAddTask:
		res, err := mutate.AddTask(m.db, text, m.draftMatrix, m.draftUrgency)
		if err != nil {
			m.status = err.Error()
			m.closeInput()
			return
		}
		m.draftText = ""
		if res.Changed {
			m.draftUrgency = m.cfg.Urgency()
			m.persist()
		}
	case modeEditTask:
		m.edit.Change(text)
		if res, err := m.edit.Commit(m.db); err == nil && res.Changed {
			m.persist()
		}
	case modeAddMatrix:
		if res, err := mutate.AddMatrix(m.db, m.sel, text); err == nil && res.Changed {
			m.persist()
			m.saveUIState()
		}
	}
	m.closeInput()
}

func (m *appModel) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *appModel) togglePinnedAt(i int) {
	n := 0
	for _, mx := range m.db.Matrices {
		if !mx.Pinned {
			continue
		}
		if n == i {
			m.sel.TogglePinned(mx.ID)
			m.heldID = 0
			m.clampRow()
			m.saveUIState()
			return
		}
		n++
	}
}

func (m *appModel) openFocusPicker() {
	var items []list.Item
	for _, mx := range m.db.Matrices {
		if !mx.Pinned {
			items = append(items, matrixItem{m: mx})
		}
	}
	if len(items) == 0 {
		m.status = "no unpinned matrices; create one with +"
		return
	}
	l := list.New(items, list.NewDefaultDelegate(), m.pickerWidth(), m.pickerHeight())
	l.Title = "Focus matrix"
	l.SetShowStatusBar(false)
	m.picker = l
	m.mode = modeFocusPick
}

func (m *appModel) switchScreen(scr screen) {
	m.screen = scr
	m.heldID = 0
	m.histRow = 0
	m.saveUIState()
}

func (m *appModel) cursorTask() *model.Task {
	rows := m.visibleRows(m.quadrant)
	if m.row < 0 || m.row >= len(rows) {
		return nil
	}
	t, ok := m.db.FindTask(rows[m.row].ID)
	if !ok {
		return nil
	}
	return t
}

// visibleRows is the rendered sequence of one quadrant. A held Completed
// task stays visible even with show_completed off so the drag can finish.
func (m *appModel) visibleRows(qi int) []model.Task {
	rows := store.VisibleTasks(m.db.Tasks, m.selectedIDs(), model.Urgencies[qi])
	if m.cfg.ShowCompleted {
		return rows
	}
	kept := rows[:0]
	for _, t := range rows {
		if t.Status != model.StatusCompleted || t.ID == m.heldID {
			kept = append(kept, t)
		}
	}
	return kept
}

func (m *appModel) selectedIDs() []string {
	return m.sel.SelectedMatrixIDs(m.db.Matrices)
}

func (m *appModel) clampRow() {
	n := len(m.visibleRows(m.quadrant))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *appModel) clampHistRow() {
	var n int
	if m.screen == screenArchived {
		n = len(store.ArchivedTasks(m.db))
	} else {
		n = len(store.DeletedTasks(m.db))
	}
	if m.histRow >= n {
		m.histRow = n - 1
	}
	if m.histRow < 0 {
		m.histRow = 0
	}
}

func (m *appModel) persist() {
	if err := m.s.Save(m.db); err != nil {
		m.status = "save failed: " + err.Error()
	}
}

func (m *appModel) afterStructural() {
	m.persist()
	m.clampRow()
}

// saveUIState mirrors the selection to disk best-effort; a failure never
// interrupts the session.
func (m *appModel) saveUIState() {
	viewName := "board"
	switch m.screen {
	case screenArchived:
		viewName = "archived"
	case screenDeleted:
		viewName = "deleted"
	}
	_ = m.s.SaveTUIState(&store.TUIState{
		Version:         1,
		View:            viewName,
		ActivePinnedIDs: m.sel.ActivePinnedIDs,
		FocusMatrixID:   m.sel.FocusMatrixID,
		ViewOrderIDs:    m.sel.ViewOrderIDs,
		LastSelectedID:  m.sel.LastSelectedMatrixID,
	})
}

func (m *appModel) pickerWidth() int {
	return max(24, m.width-8)
}

func (m *appModel) pickerHeight() int {
	return max(8, m.height-6)
}

func (m *appModel) matrixName(id string) string {
	if mx, ok := m.db.FindMatrix(id); ok {
		return mx.Name
	}
	return id
}

func nextUrgency(u model.Urgency) model.Urgency {
	for i, v := range model.Urgencies {
		if v == u {
			return model.Urgencies[(i+1)%len(model.Urgencies)]
		}
	}
	return model.UrgencyMedium
}

type matrixItem struct {
	m model.Matrix
}

func (i matrixItem) Title() string       { return i.m.Name }
func (i matrixItem) Description() string { return i.m.ID }
func (i matrixItem) FilterValue() string { return i.m.Name + " " + i.m.ID }
