package panel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workbench/internal/client"
	"workbench/internal/domain"
	"workbench/internal/notify"
)

// fakeBackend is a scriptable stand-in for the workbench API. Every request
// path is counted so tests can assert on fetch ordering and re-fetch
// behavior.
type fakeBackend struct {
	mu       sync.Mutex
	requests []string

	documentsBody string
	documentsCode int
	chatsBody     string
	chatsCode     int
	tablesBody    string
	tablesCode    int
	detailBodies  map[string]string
	detailCodes   map[string]int
	deleteCode    int

	srv *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		documentsBody: `[]`,
		chatsBody:     `[]`,
		tablesBody:    `{"tables":[]}`,
		detailBodies:  map[string]string{},
		detailCodes:   map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	writeBody := func(code int, body string) {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		fmt.Fprint(w, body)
	}

	switch {
	case r.Method == http.MethodDelete:
		code := f.deleteCode
		if code == 0 {
			code = http.StatusNoContent
		}
		w.WriteHeader(code)
	case r.URL.Path == "/api/documents" && r.Method == http.MethodGet:
		writeBody(f.documentsCode, f.documentsBody)
	case r.URL.Path == "/api/documents/upload":
		writeBody(0, `{"file_count":2}`)
	case r.URL.Path == "/api/chats" && r.Method == http.MethodGet:
		writeBody(f.chatsCode, f.chatsBody)
	case r.URL.Path == "/api/chats/upload":
		writeBody(0, `{"message_count":31}`)
	case r.URL.Path == "/api/database/tables":
		writeBody(f.tablesCode, f.tablesBody)
	default:
		name := r.URL.Path[len("/api/database/tables/"):]
		if code, ok := f.detailCodes[name]; ok {
			writeBody(code, `{"detail":"error"}`)
			return
		}
		body, ok := f.detailBodies[name]
		if !ok {
			body = `{"columns":[{"name":"id","type":"integer"}],"sample_data":[]}`
		}
		writeBody(0, body)
	}
}

func (f *fakeBackend) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeBackend) countRequests(entry string) int {
	n := 0
	for _, r := range f.requestLog() {
		if r == entry {
			n++
		}
	}
	return n
}

func newTestPanel(t *testing.T, f *fakeBackend) (*Panel, *notify.Recorder) {
	t.Helper()
	c, err := client.New(f.srv.URL)
	require.NoError(t, err)
	rec := &notify.Recorder{}
	return New(c, rec), rec
}

func TestLoadDocumentsReplacesStore(t *testing.T) {
	f := newFakeBackend(t)
	id := uuid.NewString()
	f.documentsBody = fmt.Sprintf(`[{"collection_id":%q,"file_names":["report.pdf"],"document_count":3,"created_at":"2024-06-01T10:00:00Z"}]`, id)

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadDocuments(context.Background()))

	snap := p.Snapshot()
	require.Len(t, snap.Documents.Items, 1)
	assert.Equal(t, id, snap.Documents.Items[0].CollectionID)
	assert.False(t, snap.Documents.Loading)
	assert.Empty(t, rec.All())
}

func TestLoadDocumentsFailureResetsStoreAndNotifies(t *testing.T) {
	f := newFakeBackend(t)
	f.documentsBody = `[{"collection_id":"x","file_names":[],"document_count":0,"created_at":"2024-06-01T10:00:00Z"}]`

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadDocuments(context.Background()))
	require.Len(t, p.Snapshot().Documents.Items, 1)

	f.documentsCode = http.StatusBadGateway
	require.Error(t, p.LoadDocuments(context.Background()))

	snap := p.Snapshot()
	assert.Empty(t, snap.Documents.Items, "previous content must be discarded")
	assert.False(t, snap.Documents.Loading)

	errs := rec.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "failed to fetch documents", errs[0].Message)
}

func TestLoadChatsBareArray(t *testing.T) {
	f := newFakeBackend(t)
	f.chatsBody = `[{"collection_id":"a","file_name":"a.txt","message_count":1,"platform":"whatsapp"},
		{"collection_id":"b","file_name":"b.txt","message_count":2,"platform":"teams"},
		{"collection_id":"c","file_name":"c.txt","message_count":3,"platform":"slack"}]`

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadChats(context.Background()))

	items := p.Snapshot().Chats.Items
	require.Len(t, items, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{items[0].CollectionID, items[1].CollectionID, items[2].CollectionID})
	assert.Empty(t, rec.All())
}

func TestLoadChatsEnvelope(t *testing.T) {
	f := newFakeBackend(t)
	f.chatsBody = `{"collections":[{"collection_id":"a","file_name":"a.txt","message_count":1,"platform":"whatsapp"},
		{"collection_id":"b","file_name":"b.txt","message_count":2,"platform":"slack"}],"count":2}`

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadChats(context.Background()))

	items := p.Snapshot().Chats.Items
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].CollectionID)
	assert.Equal(t, "b", items[1].CollectionID)
	assert.Empty(t, rec.All())
}

func TestLoadChatsUnrecognizedShapeIsNotAnError(t *testing.T) {
	for _, body := range []string{`null`, `{"detail":"unexpected"}`} {
		f := newFakeBackend(t)
		f.chatsBody = body

		p, rec := newTestPanel(t, f)
		require.NoError(t, p.LoadChats(context.Background()))

		snap := p.Snapshot()
		assert.Empty(t, snap.Chats.Items)
		assert.False(t, snap.Chats.Loading)
		assert.Empty(t, rec.All(), "shape mismatch must not notify for body %q", body)
	}
}

func TestLoadChatsFailureNotifies(t *testing.T) {
	f := newFakeBackend(t)
	f.chatsCode = http.StatusInternalServerError

	p, rec := newTestPanel(t, f)
	require.Error(t, p.LoadChats(context.Background()))

	errs := rec.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "failed to fetch chats", errs[0].Message)
}

func TestLoadTablesMergesDetailAndSwallowsSingleFailure(t *testing.T) {
	f := newFakeBackend(t)
	f.tablesBody = `{"tables":[{"name":"users"},{"name":"orders"},{"name":"items"},{"name":"events"},{"name":"logs"}]}`
	f.detailCodes["orders"] = http.StatusInternalServerError

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadTables(context.Background()))

	snap := p.Snapshot()
	require.Len(t, snap.Tables.Items, 5, "one failed detail must not shrink the batch")
	for _, tbl := range snap.Tables.Items {
		if tbl.Name == "orders" {
			assert.False(t, tbl.HasDetail(), "failed detail leaves the base record")
			assert.Empty(t, tbl.SampleData)
		} else {
			assert.True(t, tbl.HasDetail(), "table %s should carry columns", tbl.Name)
		}
	}
	assert.False(t, snap.Tables.Loading)
	assert.Empty(t, rec.All(), "table failures are log-only")
}

func TestLoadTablesListFailureIsSilent(t *testing.T) {
	f := newFakeBackend(t)
	f.tablesCode = http.StatusBadGateway

	p, rec := newTestPanel(t, f)
	require.Error(t, p.LoadTables(context.Background()))

	snap := p.Snapshot()
	assert.Empty(t, snap.Tables.Items)
	assert.False(t, snap.Tables.Loading)
	assert.Empty(t, rec.All(), "database fetch failures never notify")
}

func TestSetActiveTabAlwaysRefetches(t *testing.T) {
	f := newFakeBackend(t)
	p, _ := newTestPanel(t, f)

	assert.Equal(t, TabDocuments, p.ActiveTab())

	require.NoError(t, p.SetActiveTab(context.Background(), TabChats))
	require.NoError(t, p.SetActiveTab(context.Background(), TabChats))
	assert.Equal(t, TabChats, p.ActiveTab())
	assert.Equal(t, 2, f.countRequests("GET /api/chats"), "re-activating the same tab re-fetches")

	require.NoError(t, p.SetActiveTab(context.Background(), TabDocuments))
	assert.Equal(t, 1, f.countRequests("GET /api/documents"))
}

func TestDeleteDocumentReloadsWithoutClientSideFiltering(t *testing.T) {
	f := newFakeBackend(t)
	// The server keeps returning the deleted id; the store must trust it.
	f.documentsBody = `[{"collection_id":"stale","file_names":["left_over.pdf"],"document_count":1,"created_at":"2024-06-01T10:00:00Z"}]`

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.DeleteDocument(context.Background(), "stale"))

	reqs := f.requestLog()
	require.Len(t, reqs, 2)
	assert.Equal(t, "DELETE /api/documents/stale", reqs[0])
	assert.Equal(t, "GET /api/documents", reqs[1], "reload must follow delete success")

	items := p.Snapshot().Documents.Items
	require.Len(t, items, 1)
	assert.Equal(t, "stale", items[0].CollectionID)

	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, notify.Success, all[0].Level)
}

func TestDeleteDocumentFailureLeavesStoreUntouched(t *testing.T) {
	f := newFakeBackend(t)
	f.documentsBody = `[{"collection_id":"keep","file_names":["keep.pdf"],"document_count":1,"created_at":"2024-06-01T10:00:00Z"}]`

	p, rec := newTestPanel(t, f)
	require.NoError(t, p.LoadDocuments(context.Background()))
	f.deleteCode = http.StatusInternalServerError

	require.Error(t, p.DeleteDocument(context.Background(), "keep"))

	items := p.Snapshot().Documents.Items
	require.Len(t, items, 1)
	assert.Equal(t, "keep", items[0].CollectionID)
	require.Len(t, rec.Errors(), 1)
	assert.Equal(t, 1, f.countRequests("GET /api/documents"), "no reload after failed delete")
}

func TestDeleteChatReloads(t *testing.T) {
	f := newFakeBackend(t)
	p, rec := newTestPanel(t, f)

	require.NoError(t, p.DeleteChat(context.Background(), "c1"))
	assert.Equal(t, 1, f.countRequests("DELETE /api/chats/c1"))
	assert.Equal(t, 1, f.countRequests("GET /api/chats"))
	require.Len(t, rec.All(), 1)
	assert.Equal(t, "chat deleted", rec.All()[0].Message)
}

func TestToggleExpandedRoundTrip(t *testing.T) {
	f := newFakeBackend(t)
	p, _ := newTestPanel(t, f)

	p.ToggleExpanded("sessions")

	assert.True(t, p.ToggleExpanded("users"))
	snap := p.Snapshot()
	assert.Contains(t, snap.Tables.Expanded, "users")
	assert.Contains(t, snap.Tables.Expanded, "sessions")
	assert.Len(t, snap.Tables.Expanded, 2)

	assert.False(t, p.ToggleExpanded("users"))
	snap = p.Snapshot()
	assert.NotContains(t, snap.Tables.Expanded, "users")
	assert.Contains(t, snap.Tables.Expanded, "sessions", "other tables unaffected")
	assert.Len(t, snap.Tables.Expanded, 1)
	assert.Empty(t, f.requestLog(), "expansion is purely local")
}

func TestUploadDocumentsEmptySelectionIsNoOp(t *testing.T) {
	f := newFakeBackend(t)
	p, rec := newTestPanel(t, f)

	require.NoError(t, p.UploadDocuments(context.Background(), nil))
	assert.Empty(t, f.requestLog())
	assert.Empty(t, rec.All())
	assert.False(t, p.Uploading())
}

func TestUploadDocumentsReportsServerCountAndReloads(t *testing.T) {
	f := newFakeBackend(t)
	p, rec := newTestPanel(t, f)

	uploads := []*domain.Upload{
		{Name: "a.txt", Content: []byte("a")},
		{Name: "b.txt", Content: []byte("b")},
		{Name: "c.txt", Content: []byte("c")},
	}
	require.NoError(t, p.UploadDocuments(context.Background(), uploads))

	// The backend reports 2 accepted files regardless of the 3 submitted.
	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, notify.Success, all[0].Level)
	assert.Equal(t, "uploaded 2 file(s)", all[0].Message)

	assert.Equal(t, 1, f.countRequests("POST /api/documents/upload"))
	assert.Equal(t, 1, f.countRequests("GET /api/documents"))
	assert.False(t, p.Uploading())
}

func TestUploadChatDefaultsPlatformAndReloads(t *testing.T) {
	f := newFakeBackend(t)
	p, rec := newTestPanel(t, f)

	upload := &domain.Upload{Name: "export.txt", Content: []byte("hi")}
	require.NoError(t, p.UploadChat(context.Background(), upload, ""))

	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, "imported chat with 31 messages", all[0].Message)
	assert.Equal(t, 1, f.countRequests("POST /api/chats/upload"))
	assert.Equal(t, 1, f.countRequests("GET /api/chats"))
}

func TestUploadingFlagBracketsRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/documents/upload" {
			<-release
			fmt.Fprint(w, `{"file_count":1}`)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)
	p := New(c, notify.Discard)

	done := make(chan error, 1)
	go func() {
		done <- p.UploadDocuments(context.Background(), []*domain.Upload{{Name: "a.txt", Content: []byte("a")}})
	}()

	require.Eventually(t, p.Uploading, time.Second, time.Millisecond, "uploading set before the request settles")
	close(release)
	require.NoError(t, <-done)
	assert.False(t, p.Uploading())
}

func TestLoadingFlagBracketsRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)
	p := New(c, notify.Discard)

	done := make(chan error, 1)
	go func() {
		done <- p.LoadDocuments(context.Background())
	}()

	require.Eventually(t, func() bool {
		return p.Snapshot().Documents.Loading
	}, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, p.Snapshot().Documents.Loading)
}
