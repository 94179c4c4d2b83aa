// Package panel is the state and data controller behind the workspace
// view. It owns one store per resource kind, decides what to fetch when the
// active tab changes, re-synchronizes stores after mutations, and converts
// failures into user-facing notifications according to the per-kind policy.
//
// All state is owned by the Panel instance; several panels can coexist
// without interference. Methods are safe to call from the front end's
// command goroutines: store writes are mutex-guarded. Overlapping loads for
// the same kind are neither queued nor cancelled; whichever response
// settles last determines the store's final content.
package panel

import (
	"context"
	"sync"

	"workbench/internal/client"
	"workbench/internal/domain"
	"workbench/internal/notify"
)

// Tab names one of the three resource kinds shown by the panel.
type Tab string

const (
	TabDocuments Tab = "documents"
	TabChats     Tab = "chats"
	TabTables    Tab = "tables"
)

// Tabs lists the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabDocuments, TabChats, TabTables}
}

// ParseTab validates a user-supplied resource kind name.
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabDocuments, TabChats, TabTables:
		return Tab(s), true
	}
	return "", false
}

// DocumentStore caches the document-collection list and its loading flag.
type DocumentStore struct {
	Items   []domain.DocumentCollection
	Loading bool
}

// ChatStore caches the chat-collection list and its loading flag.
type ChatStore struct {
	Items   []domain.ChatCollection
	Loading bool
}

// TableStore caches the table list, its loading flag, and the set of table
// names currently expanded in the view.
type TableStore struct {
	Items    []domain.TableDescriptor
	Loading  bool
	Expanded map[string]struct{}
}

// Panel is one workspace panel instance.
type Panel struct {
	mu       sync.Mutex
	client   *client.Client
	notifier notify.Notifier

	activeTab Tab
	uploading bool
	documents DocumentStore
	chats     ChatStore
	tables    TableStore
}

// New builds a panel over the given resource client. The documents tab is
// active initially; nothing is fetched until the front end asks.
func New(c *client.Client, notifier notify.Notifier) *Panel {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Panel{
		client:    c,
		notifier:  notifier,
		activeTab: TabDocuments,
		tables:    TableStore{Expanded: make(map[string]struct{})},
	}
}

// Snapshot is a consistent copy of the panel state for rendering.
type Snapshot struct {
	ActiveTab Tab
	Uploading bool
	Documents DocumentStore
	Chats     ChatStore
	Tables    TableStore
}

// Snapshot returns a copy of the current state. Slices and the expansion
// set are copied so the front end can render without holding the lock.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{
		ActiveTab: p.activeTab,
		Uploading: p.uploading,
		Documents: DocumentStore{
			Items:   append([]domain.DocumentCollection(nil), p.documents.Items...),
			Loading: p.documents.Loading,
		},
		Chats: ChatStore{
			Items:   append([]domain.ChatCollection(nil), p.chats.Items...),
			Loading: p.chats.Loading,
		},
		Tables: TableStore{
			Items:    append([]domain.TableDescriptor(nil), p.tables.Items...),
			Loading:  p.tables.Loading,
			Expanded: make(map[string]struct{}, len(p.tables.Expanded)),
		},
	}
	for name := range p.tables.Expanded {
		snap.Tables.Expanded[name] = struct{}{}
	}
	return snap
}

// ActiveTab returns the currently active resource kind.
func (p *Panel) ActiveTab() Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeTab
}

// Uploading reports whether an upload is in flight.
func (p *Panel) Uploading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploading
}

// SetActiveTab activates the given tab and re-fetches its kind. Every
// activation re-fetches, including re-activating the current tab; redundant
// loads are accepted rather than deduplicated.
func (p *Panel) SetActiveTab(ctx context.Context, tab Tab) error {
	p.mu.Lock()
	p.activeTab = tab
	p.mu.Unlock()
	return p.Reload(ctx, tab)
}

// Reload fetches one kind into its store.
func (p *Panel) Reload(ctx context.Context, tab Tab) error {
	switch tab {
	case TabChats:
		return p.LoadChats(ctx)
	case TabTables:
		return p.LoadTables(ctx)
	default:
		return p.LoadDocuments(ctx)
	}
}

// ToggleExpanded flips whether a table's column detail is shown. Purely
// local: no network effect, no influence on when columns are fetched.
// Returns true when the table ends up expanded.
func (p *Panel) ToggleExpanded(tableName string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tables.Expanded == nil {
		p.tables.Expanded = make(map[string]struct{})
	}
	if _, ok := p.tables.Expanded[tableName]; ok {
		delete(p.tables.Expanded, tableName)
		return false
	}
	p.tables.Expanded[tableName] = struct{}{}
	return true
}

func (p *Panel) notifyError(message string) {
	p.notifier.Notify(notify.New(notify.Error, message))
}

func (p *Panel) notifySuccess(message string) {
	p.notifier.Notify(notify.New(notify.Success, message))
}
