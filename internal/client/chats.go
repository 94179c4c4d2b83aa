package client

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/url"

	"github.com/pkg/errors"

	"workbench/internal/domain"
	debuglog "workbench/internal/log"
)

// ChatService performs list/create/delete against chat collections.
type ChatService struct {
	client *Client
}

// ImportResult reports how many messages the server parsed out of an
// imported transcript.
type ImportResult struct {
	MessageCount int `json:"message_count"`
}

// chatListEnvelope is the wrapped variant of the chat list response. The
// raw Collections field doubles as the presence discriminator.
type chatListEnvelope struct {
	Collections json.RawMessage `json:"collections"`
	Count       int             `json:"count"`
}

// List returns all chat collections. The backend serves two response
// shapes, a bare array or an envelope holding a "collections" array; both
// are success cases. Anything else normalizes to an empty list without an
// error, with a debug diagnostic only.
func (s *ChatService) List(ctx context.Context) ([]domain.ChatCollection, error) {
	body, err := s.client.get(ctx, "/api/chats")
	if err != nil {
		return nil, err
	}
	return decodeChatList(body), nil
}

func decodeChatList(body []byte) []domain.ChatCollection {
	var bare []domain.ChatCollection
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var envelope chatListEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Collections != nil {
		var wrapped []domain.ChatCollection
		if err := json.Unmarshal(envelope.Collections, &wrapped); err == nil {
			return wrapped
		}
	}

	debuglog.Debug(debuglog.Detailed, "unexpected chat list shape: %s\n", excerpt(body))
	return nil
}

// Create submits exactly one transcript file with its platform tag.
func (s *ChatService) Create(ctx context.Context, upload *domain.Upload, platform domain.Platform) (*ImportResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := writeFilePart(mw, "file", upload); err != nil {
		return nil, err
	}
	if err := mw.WriteField("platform", string(platform)); err != nil {
		return nil, errors.Wrap(err, "write platform field")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	var result ImportResult
	if err := s.client.postMultipart(ctx, "/api/chats/upload", mw.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the chat collection with the given id.
func (s *ChatService) Delete(ctx context.Context, collectionID string) error {
	return s.client.delete(ctx, "/api/chats/"+url.PathEscape(collectionID))
}
