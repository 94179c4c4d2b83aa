package tui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench/internal/client"
	"workbench/internal/notify"
	"workbench/internal/panel"
)

func newTestModel(t *testing.T) (Model, *panel.Panel) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/documents":
			fmt.Fprint(w, `[{"collection_id":"d1","file_names":["guide.pdf"],"document_count":2,"created_at":"2024-06-01T10:00:00Z"}]`)
		case "/api/chats":
			fmt.Fprint(w, `[]`)
		case "/api/database/tables":
			fmt.Fprint(w, `{"tables":[{"name":"users"},{"name":"orders"}]}`)
		default:
			fmt.Fprint(w, `{"columns":[{"name":"id","type":"integer"}],"sample_data":[]}`)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ch := make(chan notify.Notification, 8)
	p := panel.New(c, notify.Func(func(n notify.Notification) { ch <- n }))
	return New(p, ch), p
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestSwitchTabDispatchesLoad(t *testing.T) {
	m, p := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, panel.TabChats, m.snapshot.ActiveTab)

	// Running the command performs the fetch and reports completion.
	msg := cmd()
	loaded, ok := msg.(tabLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, panel.TabChats, loaded.tab)
	assert.Equal(t, panel.TabChats, p.ActiveTab())

	m = applyMsg(t, m, msg)
	assert.False(t, m.snapshot.Chats.Loading)
}

func TestTabCyclesForwardAndBack(t *testing.T) {
	assert.Equal(t, panel.TabChats, nextTab(panel.TabDocuments, 1))
	assert.Equal(t, panel.TabTables, nextTab(panel.TabChats, 1))
	assert.Equal(t, panel.TabDocuments, nextTab(panel.TabTables, 1))
	assert.Equal(t, panel.TabTables, nextTab(panel.TabDocuments, -1))
}

func TestToggleExpansionKey(t *testing.T) {
	m, p := newTestModel(t)
	require.NoError(t, p.LoadTables(context.Background()))

	m = applyMsg(t, m, tabLoadedMsg{tab: panel.TabTables})
	m.snapshot.ActiveTab = panel.TabTables

	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, p.Snapshot().Tables.Expanded, "users")

	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, p.Snapshot().Tables.Expanded, "users")
	_ = m
}

func TestNotificationLifecycle(t *testing.T) {
	m, _ := newTestModel(t)

	m = applyMsg(t, m, notificationMsg(notify.New(notify.Error, "failed to fetch documents")))
	require.NotNil(t, m.notification)
	assert.Contains(t, m.View(), "failed to fetch documents")
	seq := m.notificationSeq

	// A stale expiry must not clear a newer notification.
	m = applyMsg(t, m, notificationMsg(notify.New(notify.Success, "uploaded 2 file(s)")))
	m = applyMsg(t, m, notificationExpiredMsg{seq: seq})
	require.NotNil(t, m.notification)
	assert.Equal(t, "uploaded 2 file(s)", m.notification.Message)

	m = applyMsg(t, m, notificationExpiredMsg{seq: m.notificationSeq})
	assert.Nil(t, m.notification)
}

func TestUploadPromptOnlyOnMutableTabs(t *testing.T) {
	m, _ := newTestModel(t)

	m.snapshot.ActiveTab = panel.TabTables
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	assert.Equal(t, inputNone, m.mode)

	m.snapshot.ActiveTab = panel.TabDocuments
	m = applyMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	assert.Equal(t, inputUploadDocuments, m.mode)
}

func TestResolveUploadsRejectsEmptyInput(t *testing.T) {
	_, err := resolveUploads("  , ,")
	require.ErrorIs(t, err, errNoFilesSelected)
}
