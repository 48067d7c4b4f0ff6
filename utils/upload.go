package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
)

// Upload rules shared by every multipart endpoint.
const (
	MaxUploadBytes  = 5 << 20 // per file
	MaxFilesPerForm = 5
)

var (
	// ImageExtensions are accepted for profile, service and contact images.
	ImageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
	// DocumentExtensions are accepted for investment documents.
	DocumentExtensions = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".txt": true, ".rtf": true,
	}
	// AttachmentExtensions are accepted on contact messages (either kind).
	AttachmentExtensions = mergeExts(ImageExtensions, DocumentExtensions)
)

// UploadedFile is a multipart file read fully into memory, ready for storage.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// ReadMultipartFiles reads at most maxFiles files from the named multipart
// field, enforcing the per-file size cap and the allowed extension set. The
// request must already be parsed with ParseMultipartForm. A user-facing error
// message is returned on rule violations.
func ReadMultipartFiles(r *http.Request, field string, maxFiles int, allowed map[string]bool) ([]UploadedFile, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > maxFiles {
		return nil, fmt.Errorf("Too many files. Maximum is %d files", maxFiles)
	}

	files := make([]UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readOne(fh, allowed)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

func readOne(fh *multipart.FileHeader, allowed map[string]bool) (*UploadedFile, error) {
	ext := strings.ToLower(path.Ext(fh.Filename))
	if !allowed[ext] {
		return nil, fmt.Errorf("File type not allowed: %s", fh.Filename)
	}
	if fh.Size > MaxUploadBytes {
		return nil, fmt.Errorf("File too large. Maximum size is 5MB")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read uploaded file: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return nil, fmt.Errorf("File too large. Maximum size is 5MB")
	}

	return &UploadedFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func mergeExts(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}
