package blobstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func uploadTestBlob(t *testing.T, store Store, claimID, kind, name string, content []byte) *Metadata {
	t.Helper()
	meta, err := store.Upload(context.Background(), Metadata{
		ClaimID:     claimID,
		Kind:        kind,
		FileName:    name,
		ContentType: "application/pdf",
	}, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return meta
}

func TestUploadComputesHashAndSize(t *testing.T) {
	store := NewInMemoryStore()
	content := []byte("%PDF-1.4 claim document")
	meta := uploadTestBlob(t, store, "claim-1", KindMedicalReport, "report.pdf", content)

	if meta.ID == "" {
		t.Error("expected generated ID")
	}
	if meta.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", meta.Size, len(content))
	}
	wantHash := fmt.Sprintf("%x", sha256.Sum256(content))
	if meta.Hash != wantHash {
		t.Errorf("hash = %s, want %s", meta.Hash, wantHash)
	}
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Upload(context.Background(), Metadata{
		ClaimID:     "claim-1",
		FileName:    "malware.exe",
		ContentType: "application/x-msdownload",
	}, strings.NewReader("nope"))
	if !errors.Is(err, ErrInvalidContentType) {
		t.Fatalf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestUploadRejectsMissingFileName(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Upload(context.Background(), Metadata{
		ClaimID:     "claim-1",
		ContentType: "application/pdf",
	}, strings.NewReader("x"))
	if !errors.Is(err, ErrMissingFileName) {
		t.Fatalf("expected ErrMissingFileName, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store := NewInMemoryStore()
	big := bytes.Repeat([]byte("a"), MaxFileSize+1)
	_, err := store.Upload(context.Background(), Metadata{
		ClaimID:     "claim-1",
		FileName:    "huge.pdf",
		ContentType: "application/pdf",
	}, bytes.NewReader(big))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestDownloadRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	content := []byte("billing details")
	meta := uploadTestBlob(t, store, "claim-1", KindBillingDoc, "bill.pdf", content)

	rc, got, err := store.Download(context.Background(), meta.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if !bytes.Equal(data, content) {
		t.Error("downloaded content mismatch")
	}
	if got.FileName != "bill.pdf" {
		t.Errorf("file name = %s, want bill.pdf", got.FileName)
	}
}

func TestListByClaim(t *testing.T) {
	store := NewInMemoryStore()
	uploadTestBlob(t, store, "claim-1", KindMedicalReport, "report.pdf", []byte("a"))
	uploadTestBlob(t, store, "claim-1", KindBillingDoc, "bill.pdf", []byte("b"))
	uploadTestBlob(t, store, "claim-2", KindMedicalReport, "other.pdf", []byte("c"))

	items, err := store.ListByClaim(context.Background(), "claim-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(items))
	}
}

func TestDeleteThenNotFound(t *testing.T) {
	store := NewInMemoryStore()
	meta := uploadTestBlob(t, store, "claim-1", KindMedicalReport, "report.pdf", []byte("a"))

	if err := store.Delete(context.Background(), meta.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetMetadata(context.Background(), meta.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(context.Background(), meta.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestHandlerDownload(t *testing.T) {
	store := NewInMemoryStore()
	meta := uploadTestBlob(t, store, "claim-1", KindMedicalReport, "report.pdf", []byte("doc"))
	h := NewHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(meta.ID)

	if err := h.handleDownload(c); err != nil {
		t.Fatalf("handleDownload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "report.pdf") {
		t.Errorf("Content-Disposition = %q, want filename report.pdf", got)
	}
	if rec.Body.String() != "doc" {
		t.Errorf("body = %q, want doc", rec.Body.String())
	}
}

func TestHandlerDownloadNotFound(t *testing.T) {
	h := NewHandler(NewInMemoryStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.handleDownload(c); err != nil {
		t.Fatalf("handleDownload: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
