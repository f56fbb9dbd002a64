package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// MultipartSource serves uploads parsed from a multipart form.
// Only the first file of each field is used.
type MultipartSource struct {
	form *multipart.Form
}

// NewMultipartSource wraps a parsed form. A nil form has no uploads.
func NewMultipartSource(form *multipart.Form) *MultipartSource {
	return &MultipartSource{form: form}
}

func (s *MultipartSource) Lookup(_ context.Context, field string) (Info, error) {
	if s.form == nil || len(s.form.File[field]) == 0 {
		return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, field)
	}

	fh := s.form.File[field][0]
	info := NewInfo(field, fh.Filename, fh.Filename, fh.Size, func(context.Context) (io.ReadCloser, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
		}
		return f, nil
	})
	info.MIMEType = fh.Header.Get("Content-Type")
	return info, nil
}

// Fields returns the names of the fields carrying uploads.
func (s *MultipartSource) Fields() []string {
	if s.form == nil {
		return nil
	}
	fields := make([]string, 0, len(s.form.File))
	for name, files := range s.form.File {
		if len(files) > 0 {
			fields = append(fields, name)
		}
	}
	return fields
}
