package utils

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"learnhub/internal/services"
)

// ParseMultipart parses a multipart body, keeping up to maxMemory bytes in
// memory and spilling the rest to temporary files.
func ParseMultipart(r *http.Request, maxMemory int64) error {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.NewValidationError("Upload exceeds the maximum request size", err)
		}
		return services.NewValidationError("Invalid multipart form", err)
	}
	return nil
}

// FormFiles opens every file part of a parsed form, keyed by field name.
// Only the first file of each field is used. Call the returned release
// function when the uploads are no longer needed.
func FormFiles(r *http.Request) (map[string]*services.FileUpload, func(), error) {
	files := make(map[string]*services.FileUpload)
	var opened []multipart.File
	release := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	if r.MultipartForm == nil {
		return files, release, nil
	}

	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		f, err := header.Open()
		if err != nil {
			release()
			return nil, func() {}, services.NewValidationError("Failed to read uploaded file "+field, err)
		}
		opened = append(opened, f)
		files[field] = &services.FileUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  f,
		}
	}
	return files, release, nil
}

// FormFloat parses an optional numeric form field
func FormFloat(r *http.Request, field string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, services.NewValidationError(field+" must be a number", err).WithDetail("field", field)
	}
	return v, nil
}
