package panel

import (
	"context"
	"fmt"

	"workbench/internal/domain"
	"workbench/internal/i18n"
	debuglog "workbench/internal/log"
)

// UploadDocuments submits the selected files as one multi-file request and
// re-synchronizes the documents store on success. An empty selection is a
// no-op. The success notification reports the count the server accepted,
// which may differ from the number submitted. Failures notify the user and
// are not retried.
func (p *Panel) UploadDocuments(ctx context.Context, uploads []*domain.Upload) error {
	if len(uploads) == 0 {
		return nil
	}

	p.setUploading(true)
	defer p.setUploading(false)

	result, err := p.client.Documents().Create(ctx, uploads)
	if err != nil {
		debuglog.Debug(debuglog.Basic, "upload documents: %v\n", err)
		p.notifyError(i18n.T("notify_documents_upload_failed"))
		return err
	}

	p.notifySuccess(fmt.Sprintf(i18n.T("notify_documents_uploaded"), result.FileCount))
	return p.LoadDocuments(ctx)
}

// UploadChat submits one transcript with its platform tag and
// re-synchronizes the chats store on success. The uploading flag is shared
// with document uploads: the view shows a single upload in flight at a
// time, though requests are not mutually exclusive at the transport level.
func (p *Panel) UploadChat(ctx context.Context, upload *domain.Upload, platform domain.Platform) error {
	if upload == nil {
		return nil
	}
	if platform == "" {
		platform = domain.DefaultPlatform
	}

	p.setUploading(true)
	defer p.setUploading(false)

	result, err := p.client.Chats().Create(ctx, upload, platform)
	if err != nil {
		debuglog.Debug(debuglog.Basic, "upload chat: %v\n", err)
		p.notifyError(i18n.T("notify_chat_upload_failed"))
		return err
	}

	p.notifySuccess(fmt.Sprintf(i18n.T("notify_chat_uploaded"), result.MessageCount))
	return p.LoadChats(ctx)
}

// DeleteDocument deletes one collection and reloads the list on success.
// On failure the store is left untouched; a partially deleted collection
// may stay visible until the next reload.
func (p *Panel) DeleteDocument(ctx context.Context, collectionID string) error {
	if err := p.client.Documents().Delete(ctx, collectionID); err != nil {
		debuglog.Debug(debuglog.Basic, "delete document %s: %v\n", collectionID, err)
		p.notifyError(i18n.T("notify_document_delete_failed"))
		return err
	}

	p.notifySuccess(i18n.T("notify_document_deleted"))
	return p.LoadDocuments(ctx)
}

// DeleteChat deletes one chat collection and reloads the list on success.
func (p *Panel) DeleteChat(ctx context.Context, collectionID string) error {
	if err := p.client.Chats().Delete(ctx, collectionID); err != nil {
		debuglog.Debug(debuglog.Basic, "delete chat %s: %v\n", collectionID, err)
		p.notifyError(i18n.T("notify_chat_delete_failed"))
		return err
	}

	p.notifySuccess(i18n.T("notify_chat_deleted"))
	return p.LoadChats(ctx)
}

func (p *Panel) setUploading(uploading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploading = uploading
}
