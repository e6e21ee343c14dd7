// Package blobstore stores claim attachment documents (medical reports and
// billing documents). It defines the Store interface, an in-memory
// implementation used in development and tests, and Echo handlers for
// download, metadata, and deletion.
package blobstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	ErrNotFound           = errors.New("attachment not found")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrMissingFileName    = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed attachment size in bytes (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// AllowedContentTypes lists the document types accepted for claim uploads.
var AllowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"text/plain":      true,
}

// Kind identifies which claim document slot an attachment fills.
const (
	KindMedicalReport = "medical-report"
	KindBillingDoc    = "billing-doc"
)

// Metadata describes a stored attachment.
type Metadata struct {
	ID          string    `json:"id"`
	ClaimID     string    `json:"claim_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Hash        string    `json:"hash"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// Store defines the contract for attachment storage backends.
type Store interface {
	Upload(ctx context.Context, meta Metadata, content io.Reader) (*Metadata, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Metadata, error)
	Delete(ctx context.Context, id string) error
	GetMetadata(ctx context.Context, id string) (*Metadata, error)
	ListByClaim(ctx context.Context, claimID string) ([]*Metadata, error)
}

type storedBlob struct {
	metadata Metadata
	content  []byte
}

// InMemoryStore is a thread-safe, in-memory Store.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]*storedBlob
}

// NewInMemoryStore returns a ready-to-use InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string]*storedBlob)}
}

// Upload validates inputs, reads the content, computes a SHA-256 hash, and
// stores the attachment in memory.
func (s *InMemoryStore) Upload(_ context.Context, meta Metadata, content io.Reader) (*Metadata, error) {
	if meta.FileName == "" {
		return nil, ErrMissingFileName
	}
	if !AllowedContentTypes[meta.ContentType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContentType, meta.ContentType)
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	h := sha256.Sum256(data)

	meta.ID = uuid.New().String()
	meta.Size = int64(len(data))
	meta.Hash = fmt.Sprintf("%x", h)
	meta.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.blobs[meta.ID] = &storedBlob{metadata: meta, content: data}
	s.mu.Unlock()

	out := meta
	return &out, nil
}

// Download returns an io.ReadCloser over the attachment content and its
// metadata.
func (s *InMemoryStore) Download(_ context.Context, id string) (io.ReadCloser, *Metadata, error) {
	s.mu.RLock()
	blob, ok := s.blobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, ErrNotFound
	}

	meta := blob.metadata
	return io.NopCloser(bytes.NewReader(blob.content)), &meta, nil
}

// Delete removes an attachment by ID.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, id)
	return nil
}

// GetMetadata returns attachment metadata without content.
func (s *InMemoryStore) GetMetadata(_ context.Context, id string) (*Metadata, error) {
	s.mu.RLock()
	blob, ok := s.blobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	meta := blob.metadata
	return &meta, nil
}

// ListByClaim returns all attachments belonging to a claim.
func (s *InMemoryStore) ListByClaim(_ context.Context, claimID string) ([]*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*Metadata
	for _, b := range s.blobs {
		if b.metadata.ClaimID != claimID {
			continue
		}
		m := b.metadata
		matched = append(matched, &m)
	}
	return matched, nil
}

// Handler provides Echo HTTP handlers for attachment operations. Uploads
// happen through the claim submission endpoint, not here.
type Handler struct {
	store Store
}

// NewHandler creates a new Handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts attachment routes on the supplied Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/attachments/:id", h.handleDownload)
	g.GET("/attachments/:id/metadata", h.handleGetMetadata)
	g.DELETE("/attachments/:id", h.handleDelete)
}

func (h *Handler) handleDownload(c echo.Context) error {
	rc, meta, err := h.store.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": err.Error()})
	}
	defer rc.Close()

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, meta.FileName))
	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

func (h *Handler) handleGetMetadata(c echo.Context) error {
	meta, err := h.store.GetMetadata(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": err.Error()})
	}
	return c.JSON(http.StatusOK, meta)
}

func (h *Handler) handleDelete(c echo.Context) error {
	err := h.store.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
