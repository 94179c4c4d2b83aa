package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"

	"github.com/pkg/errors"

	"workbench/internal/domain"
)

// DocumentService performs list/create/delete against document collections.
type DocumentService struct {
	client *Client
}

// UploadResult reports how many files the server accepted. The count may
// legitimately differ from the number submitted (server-side deduplication).
type UploadResult struct {
	FileCount int `json:"file_count"`
}

// List returns all document collections.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentCollection, error) {
	var out []domain.DocumentCollection
	if err := s.client.getJSON(ctx, "/api/documents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits all uploads as one multi-file request.
func (s *DocumentService) Create(ctx context.Context, uploads []*domain.Upload) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, u := range uploads {
		if err := writeFilePart(mw, "files", u); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	var result UploadResult
	if err := s.client.postMultipart(ctx, "/api/documents/upload", mw.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the collection with the given server-assigned id.
func (s *DocumentService) Delete(ctx context.Context, collectionID string) error {
	return s.client.delete(ctx, "/api/documents/"+url.PathEscape(collectionID))
}

// writeFilePart adds one file part with its detected MIME type, falling
// back to octet-stream when detection fails.
func writeFilePart(mw *multipart.Writer, field string, u *domain.Upload) error {
	content, err := u.ContentBytes()
	if err != nil {
		return errors.Wrapf(err, "read upload %s", u.Name)
	}
	contentType, err := u.ResolveType()
	if err != nil {
		contentType = "application/octet-stream"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+escapeQuotes(u.Name)+`"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return errors.Wrap(err, "create form file")
	}
	if _, err = io.Copy(part, bytes.NewReader(content)); err != nil {
		return errors.Wrapf(err, "copy upload %s", u.Name)
	}
	return nil
}

func escapeQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
