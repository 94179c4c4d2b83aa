// Package tui renders the workspace panel in the terminal. It is a thin
// front end: all fetch/mutation decisions live in the panel controller, the
// model only dispatches commands and re-renders from snapshots.
package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"workbench/internal/domain"
	"workbench/internal/notify"
	"workbench/internal/panel"
)

var errNoFilesSelected = errors.New("no files selected")

type inputMode int

const (
	inputNone inputMode = iota
	inputUploadDocuments
	inputUploadChatPath
	inputUploadChatPlatform
	inputConfirmDelete
)

// Model is the Bubble Tea model for the workspace panel.
type Model struct {
	panel         *panel.Panel
	notifications <-chan notify.Notification

	snapshot panel.Snapshot
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model

	mode            inputMode
	pendingChatPath string
	pendingDeleteID string

	cursor map[panel.Tab]int

	notification    *notify.Notification
	notificationSeq int

	width  int
	height int
}

// New builds the model. The channel must be fed by the notifier the panel
// was constructed with.
func New(p *panel.Panel, notifications <-chan notify.Notification) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.CharLimit = 512

	return Model{
		panel:         p,
		notifications: notifications,
		snapshot:      p.Snapshot(),
		keys:          newKeyMap(),
		help:          help.New(),
		spinner:       sp,
		input:         input,
		cursor: map[panel.Tab]int{
			panel.TabDocuments: 0,
			panel.TabChats:     0,
			panel.TabTables:    0,
		},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForNotification(m.notifications),
		activateTab(m.panel, panel.TabDocuments),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.snapshot = m.panel.Snapshot()
		return m, cmd

	case tabLoadedMsg, mutationDoneMsg:
		m.snapshot = m.panel.Snapshot()
		m.clampCursor()
		return m, nil

	case notificationMsg:
		n := notify.Notification(msg)
		m.notification = &n
		m.notificationSeq++
		return m, tea.Batch(
			waitForNotification(m.notifications),
			expireNotification(m.notificationSeq),
		)

	case notificationExpiredMsg:
		if msg.seq == m.notificationSeq {
			m.notification = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Documents):
		return m.switchTab(panel.TabDocuments)
	case key.Matches(msg, m.keys.Chats):
		return m.switchTab(panel.TabChats)
	case key.Matches(msg, m.keys.Tables):
		return m.switchTab(panel.TabTables)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(nextTab(m.snapshot.ActiveTab, 1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(nextTab(m.snapshot.ActiveTab, -1))

	case key.Matches(msg, m.keys.Reload):
		return m, reloadTab(m.panel, m.snapshot.ActiveTab)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.snapshot.ActiveTab == panel.TabTables {
			if name, ok := m.selectedTable(); ok {
				m.panel.ToggleExpanded(name)
				m.snapshot = m.panel.Snapshot()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		return m.beginUpload()

	case key.Matches(msg, m.keys.Delete):
		return m.beginDelete()

	case key.Matches(msg, m.keys.Yank):
		if id, ok := m.selectedCollectionID(); ok {
			if err := clipboard.WriteAll(id); err == nil {
				n := notify.New(notify.Info, fmt.Sprintf("copied %s", id))
				m.notification = &n
				m.notificationSeq++
				return m, expireNotification(m.notificationSeq)
			}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = inputNone
		m.input.Reset()
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.mode = inputNone
		m.input.Reset()
		m.input.Blur()

		switch mode {
		case inputUploadDocuments:
			return m, uploadDocuments(m.panel, value)
		case inputUploadChatPath:
			m.pendingChatPath = value
			m.mode = inputUploadChatPlatform
			m.input.Placeholder = "platform (whatsapp/teams/slack)"
			m.input.Focus()
			return m, nil
		case inputUploadChatPlatform:
			platform, ok := domain.ParsePlatform(value)
			if !ok {
				n := notify.New(notify.Error, fmt.Sprintf("unknown platform %q", value))
				m.notification = &n
				m.notificationSeq++
				return m, expireNotification(m.notificationSeq)
			}
			return m, uploadChat(m.panel, m.pendingChatPath, platform)
		case inputConfirmDelete:
			if value == "y" || value == "yes" {
				switch m.snapshot.ActiveTab {
				case panel.TabDocuments:
					return m, deleteDocument(m.panel, m.pendingDeleteID)
				case panel.TabChats:
					return m, deleteChat(m.panel, m.pendingDeleteID)
				}
			}
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) switchTab(tab panel.Tab) (tea.Model, tea.Cmd) {
	m.snapshot.ActiveTab = tab
	return m, activateTab(m.panel, tab)
}

func (m Model) beginUpload() (tea.Model, tea.Cmd) {
	switch m.snapshot.ActiveTab {
	case panel.TabDocuments:
		m.mode = inputUploadDocuments
		m.input.Placeholder = "paths, comma separated"
	case panel.TabChats:
		m.mode = inputUploadChatPath
		m.input.Placeholder = "transcript path"
	default:
		return m, nil // tables are read-only
	}
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) beginDelete() (tea.Model, tea.Cmd) {
	id, ok := m.selectedCollectionID()
	if !ok || m.snapshot.ActiveTab == panel.TabTables {
		return m, nil
	}
	m.pendingDeleteID = id
	m.mode = inputConfirmDelete
	m.input.Placeholder = "delete " + id + "? (y/n)"
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) moveCursor(delta int) {
	tab := m.snapshot.ActiveTab
	m.cursor[tab] += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	for _, tab := range panel.Tabs() {
		max := m.rowCount(tab) - 1
		if m.cursor[tab] > max {
			m.cursor[tab] = max
		}
		if m.cursor[tab] < 0 {
			m.cursor[tab] = 0
		}
	}
}

func (m Model) rowCount(tab panel.Tab) int {
	switch tab {
	case panel.TabChats:
		return len(m.snapshot.Chats.Items)
	case panel.TabTables:
		return len(m.snapshot.Tables.Items)
	default:
		return len(m.snapshot.Documents.Items)
	}
}

func (m Model) selectedCollectionID() (string, bool) {
	i := m.cursor[m.snapshot.ActiveTab]
	switch m.snapshot.ActiveTab {
	case panel.TabDocuments:
		if i < len(m.snapshot.Documents.Items) {
			return m.snapshot.Documents.Items[i].CollectionID, true
		}
	case panel.TabChats:
		if i < len(m.snapshot.Chats.Items) {
			return m.snapshot.Chats.Items[i].CollectionID, true
		}
	case panel.TabTables:
		if i < len(m.snapshot.Tables.Items) {
			return m.snapshot.Tables.Items[i].Name, true
		}
	}
	return "", false
}

func (m Model) selectedTable() (string, bool) {
	i := m.cursor[panel.TabTables]
	if i < len(m.snapshot.Tables.Items) {
		return m.snapshot.Tables.Items[i].Name, true
	}
	return "", false
}

func nextTab(current panel.Tab, delta int) panel.Tab {
	tabs := panel.Tabs()
	for i, t := range tabs {
		if t == current {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return panel.TabDocuments
}
