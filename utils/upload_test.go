package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func multipartRequest(t *testing.T, field string, filenames ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range filenames {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := fw.Write([]byte("content")); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	return r
}

func TestReadMultipartFilesAcceptsAllowedExtensions(t *testing.T) {
	r := multipartRequest(t, "documents", "report.pdf", "notes.txt")
	files, err := ReadMultipartFiles(r, "documents", MaxFilesPerForm, DocumentExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "report.pdf" || files[0].Size != int64(len("content")) {
		t.Fatalf("unexpected file metadata: %+v", files[0])
	}
}

func TestReadMultipartFilesRejectsDisallowedExtension(t *testing.T) {
	r := multipartRequest(t, "documents", "malware.exe")
	_, err := ReadMultipartFiles(r, "documents", MaxFilesPerForm, DocumentExtensions)
	if err == nil {
		t.Fatal("expected rejection of .exe file")
	}
}

func TestReadMultipartFilesRejectsTooMany(t *testing.T) {
	r := multipartRequest(t, "images", "a.png", "b.png", "c.png")
	_, err := ReadMultipartFiles(r, "images", 2, ImageExtensions)
	if err == nil {
		t.Fatal("expected rejection over the file limit")
	}
}

func TestReadMultipartFilesMissingFieldIsEmpty(t *testing.T) {
	r := multipartRequest(t, "images", "a.png")
	files, err := ReadMultipartFiles(r, "documents", MaxFilesPerForm, DocumentExtensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestAttachmentExtensionsCoverBothKinds(t *testing.T) {
	for _, ext := range []string{".png", ".pdf", ".docx", ".webp"} {
		if !AttachmentExtensions[ext] {
			t.Fatalf("expected %s to be accepted as attachment", ext)
		}
	}
	if AttachmentExtensions[".exe"] {
		t.Fatal(".exe must not be accepted")
	}
}
