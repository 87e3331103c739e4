package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"socialnetwork/internal/storage"
)

// readUpload pulls a single file out of a multipart form, bounded by MaxUploadSize.
// The caller closes the returned file.
func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request, field string) (storage.Upload, multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return storage.Upload{}, nil, fmt.Errorf("File is too large (max %d MB)", h.Cfg.MaxUploadSize/(1024*1024))
		}
		return storage.Upload{}, nil, errors.New("Failed to process the uploaded file")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return storage.Upload{}, nil, fmt.Errorf("%s: No file was submitted.", field)
	}

	return storage.Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	}, file, nil
}
