// Package file provides upload metadata for validation rules that inspect files.
//
// The central type is Info: the original name, a location, the size in bytes,
// an optional upload error and a way to open the content. A Source resolves
// the upload attached to a form field.
//
// # Sources
//
//   - MultipartSource: uploads parsed from a multipart/form-data request
//   - LocalSource: files already on disk, mapped by field name and confined to a base directory
//   - S3Source: objects in Amazon S3 or an S3-compatible service (MinIO, Wasabi, ...)
//   - Sources: tries several sources in order
//
// A Source returns ErrFileNotFound (wrapped) when the field has no upload.
//
// # Usage
//
//	if err := r.ParseMultipartForm(32 << 20); err != nil {
//		return err
//	}
//	src := file.NewMultipartSource(r.MultipartForm)
//
//	info, err := src.Lookup(ctx, "avatar")
//	switch {
//	case errors.Is(err, file.ErrFileNotFound):
//		// nothing uploaded
//	case err != nil:
//		return err
//	}
//
//	mime, err := info.DetectMIME(ctx)
//
// # Content detection
//
// DetectMIME and DetectMIMEBytes sniff the content with
// github.com/gabriel-vasile/mimetype instead of trusting extensions or the
// declared Content-Type. MatchMIME compares a detected type against a
// pattern such as "image/*" or "*/*".
package file
