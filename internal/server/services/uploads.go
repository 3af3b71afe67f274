package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/blob"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload describes a stored file.
type Upload struct {
	Filename string `json:"filename"`
	Key      string `json:"key"`
	URL      string `json:"url"`
}

// UploadService stores images for authenticated users.
type UploadService struct {
	store    blob.Store
	maxBytes int64
}

func NewUploadService(store blob.Store, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes}
}

// Upload accepts JPEG, PNG or WEBP up to the configured size. The content
// type is sniffed from the bytes, not taken from the client.
func (s *UploadService) Upload(ctx context.Context, actor *models.User, filename string, r io.Reader) (*Upload, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, internal("read upload", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrorValidation, s.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", common.ErrorValidation)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %s", common.ErrorValidation, contentType)
	}

	key := fmt.Sprintf("uploads/%d/%s%s", actor.ID, uuid.NewString(), ext)
	if err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, internal("store upload", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, internal("upload url", err)
	}

	return &Upload{Filename: filename, Key: key, URL: url}, nil
}
