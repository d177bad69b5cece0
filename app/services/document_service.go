package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/metrics"
	"github.com/holisticagro/agromart/pkg/storage"
)

// UploadInput is one multipart upload. Body is read exactly once.
type UploadInput struct {
	Name        string
	Email       string
	Phone       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DocumentService keeps upload metadata and blobs in step. Uploads write
// the blob first; deletes remove the metadata first. Either way a failure
// in the second step is reported with the name of the blob left behind.
type DocumentService struct {
	docs DocumentStore
	disk storage.Disk
	now  Clock
}

func NewDocumentService(docs DocumentStore, disk storage.Disk) *DocumentService {
	return &DocumentService{docs: docs, disk: disk, now: time.Now}
}

func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	log := logger.WithCtx(ctx)
	now := s.now()
	blob := models.BlobName(in.Filename, now)

	if err := s.disk.Put(ctx, blob, in.Body, in.Size, in.ContentType); err != nil {
		metrics.Outcome("upload", "blob_failed")
		return nil, apperr.Wrap(apperr.CodeUploadFailed, err, "")
	}

	doc := &models.Document{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		PDF:       blob,
		CreatedAt: now.UTC(),
	}
	if _, err := s.docs.Insert(ctx, doc); err != nil {
		log.Error("blob stored without metadata", "blob", blob, "error", err)
		metrics.Outcome("upload", "orphaned_blob")
		return nil, apperr.Wrap(apperr.CodeUploadFailed, err, "").
			WithDetails(map[string]string{"orphanedBlob": blob})
	}

	metrics.Outcome("upload", "stored")
	log.Info("document uploaded", "document_id", doc.ID.Hex(), "blob", blob)
	return doc, nil
}

// Delete removes the record with the hex id, then its blob.
func (s *DocumentService) Delete(ctx context.Context, rawID string) error {
	log := logger.WithCtx(ctx)

	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	doc, err := s.docs.FindByID(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperr.NotFound("Document not found")
	case err != nil:
		return apperr.Store(err, "")
	}

	n, err := s.docs.DeleteByID(ctx, id)
	if err != nil {
		metrics.Outcome("document_delete", "store_failure")
		return apperr.Store(err, "")
	}
	if n == 0 {
		log.Warn("document record already removed", "document_id", rawID)
	}

	if err := s.disk.Delete(ctx, doc.PDF); err != nil {
		log.Error("document record removed but blob delete failed", "document_id", rawID, "blob", doc.PDF, "error", err)
		metrics.Outcome("document_delete", "blob_failed")
		return apperr.Wrap(apperr.CodeBlobDeleteFailed, err, "").
			WithDetails(map[string]string{"blob": doc.PDF})
	}

	metrics.Outcome("document_delete", "deleted")
	log.Info("document deleted", "document_id", rawID, "blob", doc.PDF)
	return nil
}

func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.docs.All(ctx)
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	return docs, nil
}

// Open streams the blob called name. The caller closes the reader.
func (s *DocumentService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := storage.ValidName(name); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "invalid file name")
	}
	rc, err := s.disk.Open(ctx, name)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		return nil, apperr.NotFound("File not found")
	case err != nil:
		return nil, apperr.Store(err, "")
	}
	return rc, nil
}
