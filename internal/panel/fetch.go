package panel

import (
	"context"
	"sync"

	"workbench/internal/client"
	"workbench/internal/domain"
	"workbench/internal/i18n"
	debuglog "workbench/internal/log"
)

// LoadDocuments replaces the documents store with the server's current
// list. On failure the store is reset to empty and the user is notified;
// the loading flag is cleared on both paths.
func (p *Panel) LoadDocuments(ctx context.Context) error {
	p.setLoading(TabDocuments, true)

	items, err := p.client.Documents().List(ctx)

	p.mu.Lock()
	p.documents.Loading = false
	if err != nil {
		p.documents.Items = nil
	} else {
		p.documents.Items = items
	}
	p.mu.Unlock()

	if err != nil {
		debuglog.Debug(debuglog.Basic, "load documents: %v\n", err)
		p.notifyError(i18n.T("notify_documents_fetch_failed"))
		return err
	}
	return nil
}

// LoadChats replaces the chats store. Response-shape normalization happens
// in the client; both accepted shapes count as success here.
func (p *Panel) LoadChats(ctx context.Context) error {
	p.setLoading(TabChats, true)

	items, err := p.client.Chats().List(ctx)

	p.mu.Lock()
	p.chats.Loading = false
	if err != nil {
		p.chats.Items = nil
	} else {
		p.chats.Items = items
	}
	p.mu.Unlock()

	if err != nil {
		debuglog.Debug(debuglog.Basic, "load chats: %v\n", err)
		p.notifyError(i18n.T("notify_chats_fetch_failed"))
		return err
	}
	return nil
}

// LoadTables fetches the table list and, for each table, its column and
// sample detail. Detail fetches run concurrently and are joined before the
// store is updated once; a failed detail degrades that single record rather
// than failing the batch. Unlike the other two kinds, fetch failures here
// are logged only and never surface as a notification.
func (p *Panel) LoadTables(ctx context.Context) error {
	p.setLoading(TabTables, true)

	base, err := p.client.Tables().List(ctx)
	if err != nil {
		p.mu.Lock()
		p.tables.Loading = false
		p.tables.Items = nil
		p.mu.Unlock()
		debuglog.Debug(debuglog.Basic, "load tables: %v\n", err)
		return err
	}

	merged := p.attachTableDetails(ctx, base)

	p.mu.Lock()
	p.tables.Loading = false
	p.tables.Items = merged
	p.mu.Unlock()
	return nil
}

// attachTableDetails fans out one detail fetch per table and merges the
// results positionally once every fetch has settled.
func (p *Panel) attachTableDetails(ctx context.Context, base []domain.TableDescriptor) []domain.TableDescriptor {
	if len(base) == 0 {
		return base
	}

	details := make([]*client.TableDetail, len(base))
	var wg sync.WaitGroup
	for i := range base {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			detail, err := p.client.Tables().Detail(ctx, name)
			if err != nil {
				debuglog.Debug(debuglog.Detailed, "table detail %s: %v\n", name, err)
				return
			}
			details[i] = detail
		}(i, base[i].Name)
	}
	wg.Wait()

	merged := make([]domain.TableDescriptor, len(base))
	for i, tbl := range base {
		if d := details[i]; d != nil {
			tbl.Columns = d.Columns
			tbl.SampleData = d.SampleData
			if d.RowCount != nil {
				tbl.RowCount = d.RowCount
			}
		}
		merged[i] = tbl
	}
	return merged
}

func (p *Panel) setLoading(tab Tab, loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch tab {
	case TabChats:
		p.chats.Loading = loading
	case TabTables:
		p.tables.Loading = loading
	default:
		p.documents.Loading = loading
	}
}
