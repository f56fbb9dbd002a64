package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Info describes an uploaded file.
type Info struct {
	Field    string
	Name     string // original client-side file name, sanitized
	Path     string // location in the backing store: a local path or an object key
	Size     int64  // bytes
	MIMEType string // declared content type, if any
	Err      error  // upload error reported by the transport

	open func(ctx context.Context) (io.ReadCloser, error)
}

// NewInfo builds an Info whose content is served by open.
func NewInfo(field, name, path string, size int64, open func(ctx context.Context) (io.ReadCloser, error)) Info {
	return Info{Field: field, Name: SanitizeFilename(name), Path: path, Size: size, open: open}
}

// OK reports whether the upload completed without an error.
func (i Info) OK() bool {
	return i.Err == nil
}

// Kilobytes returns the size in kilobytes.
func (i Info) Kilobytes() float64 {
	return float64(i.Size) / 1024
}

// Open returns the file content. The caller must close it.
func (i Info) Open(ctx context.Context) (io.ReadCloser, error) {
	if i.Err != nil {
		return nil, i.Err
	}
	if i.open == nil {
		return nil, ErrNoContent
	}
	return i.open(ctx)
}

// ReadAll reads the content, failing when it exceeds limit bytes. A limit <= 0 means no limit.
func (i Info) ReadAll(ctx context.Context, limit int64) ([]byte, error) {
	rc, err := i.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrFailedToReadFile, limit)
	}
	return data, nil
}

// DetectMIME sniffs the content type of the file.
func (i Info) DetectMIME(ctx context.Context) (string, error) {
	rc, err := i.Open(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	return DetectMIME(rc)
}

// Source resolves the upload attached to a field.
type Source interface {
	Lookup(ctx context.Context, field string) (Info, error)
}

// Sources tries each source in order and returns the first upload found.
type Sources []Source

func (s Sources) Lookup(ctx context.Context, field string) (Info, error) {
	for _, src := range s {
		if src == nil {
			continue
		}
		info, err := src.Lookup(ctx, field)
		if errors.Is(err, ErrFileNotFound) {
			continue
		}
		return info, err
	}
	return Info{}, fmt.Errorf("%w: %s", ErrFileNotFound, field)
}

// DetectMIME sniffs the content type from a reader, without parameters.
func DetectMIME(r io.Reader) (string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}
	return baseMIME(m.String()), nil
}

// DetectMIMEBytes sniffs the content type of a byte slice, without parameters.
func DetectMIMEBytes(data []byte) string {
	return baseMIME(mimetype.Detect(data).String())
}

// MatchMIME reports whether mime matches pattern. The pattern may use "*" for
// the type or subtype, as in "image/*" or "*/*".
func MatchMIME(mime, pattern string) bool {
	mime = strings.ToLower(baseMIME(mime))
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if mime == "" || pattern == "" {
		return false
	}

	mt, ms, _ := strings.Cut(mime, "/")
	pt, ps, ok := strings.Cut(pattern, "/")
	if !ok {
		return pt == "*" || pt == mt
	}
	return (pt == "*" || pt == mt) && (ps == "*" || ps == ms)
}

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/heic":    true,
	"image/heif":    true,
	"image/avif":    true,
	"image/jxl":     true,
	"image/x-icon":  true,
}

// IsImageMIME reports whether mime is a well-known image type.
func IsImageMIME(mime string) bool {
	return imageMIMETypes[strings.ToLower(baseMIME(mime))]
}

// SanitizeFilename removes path components and NUL bytes from a file name.
// Returns "unnamed" for empty names and directory references.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

func baseMIME(m string) string {
	m, _, _ = strings.Cut(m, ";")
	return strings.TrimSpace(m)
}
