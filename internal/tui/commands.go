package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"workbench/internal/domain"
	"workbench/internal/notify"
	"workbench/internal/panel"
	"workbench/internal/util"
)

const notificationTTL = 4 * time.Second

type tabLoadedMsg struct {
	tab panel.Tab
}

type mutationDoneMsg struct {
	tab panel.Tab
}

type notificationMsg notify.Notification

type notificationExpiredMsg struct {
	seq int
}

// waitForNotification forwards the next panel notification into the
// program. Re-issued after every receipt so the channel keeps draining.
func waitForNotification(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func expireNotification(seq int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{seq: seq}
	})
}

// activateTab switches the panel to the given tab and re-fetches its kind.
// The fetch runs on the command goroutine; the model re-renders from a
// fresh snapshot when the message lands.
func activateTab(p *panel.Panel, tab panel.Tab) tea.Cmd {
	return func() tea.Msg {
		_ = p.SetActiveTab(context.Background(), tab)
		return tabLoadedMsg{tab: tab}
	}
}

func reloadTab(p *panel.Panel, tab panel.Tab) tea.Cmd {
	return func() tea.Msg {
		_ = p.Reload(context.Background(), tab)
		return tabLoadedMsg{tab: tab}
	}
}

// uploadDocuments resolves the entered paths and submits them as one
// request. Path errors surface as a notification here; transport failures
// are already notified by the panel.
func uploadDocuments(p *panel.Panel, rawPaths string) tea.Cmd {
	return func() tea.Msg {
		uploads, err := resolveUploads(rawPaths)
		if err != nil {
			return notificationMsg(notify.New(notify.Error, err.Error()))
		}
		_ = p.UploadDocuments(context.Background(), uploads)
		return mutationDoneMsg{tab: panel.TabDocuments}
	}
}

func uploadChat(p *panel.Panel, rawPath string, platform domain.Platform) tea.Cmd {
	return func() tea.Msg {
		uploads, err := resolveUploads(rawPath)
		if err != nil {
			return notificationMsg(notify.New(notify.Error, err.Error()))
		}
		_ = p.UploadChat(context.Background(), uploads[0], platform)
		return mutationDoneMsg{tab: panel.TabChats}
	}
}

func deleteDocument(p *panel.Panel, collectionID string) tea.Cmd {
	return func() tea.Msg {
		_ = p.DeleteDocument(context.Background(), collectionID)
		return mutationDoneMsg{tab: panel.TabDocuments}
	}
}

func deleteChat(p *panel.Panel, collectionID string) tea.Cmd {
	return func() tea.Msg {
		_ = p.DeleteChat(context.Background(), collectionID)
		return mutationDoneMsg{tab: panel.TabChats}
	}
}

func resolveUploads(raw string) ([]*domain.Upload, error) {
	var uploads []*domain.Upload
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		path, err := util.ExpandPath(part)
		if err != nil {
			return nil, err
		}
		u, err := domain.NewUpload(path)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	if len(uploads) == 0 {
		return nil, errNoFilesSelected
	}
	return uploads, nil
}
