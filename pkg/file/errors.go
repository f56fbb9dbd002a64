package file

import "errors"

var (
	ErrInvalidPath = errors.New("invalid path")

	ErrFileNotFound           = errors.New("file not found")
	ErrIsDirectory            = errors.New("path is a directory")
	ErrNoContent              = errors.New("file content is not available")
	ErrFailedToOpenFile       = errors.New("failed to open file")
	ErrFailedToReadFile       = errors.New("failed to read file")
	ErrFailedToStatPath       = errors.New("failed to stat path")
	ErrFailedToDetectMIMEType = errors.New("failed to detect MIME type")

	// S3 error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrInvalidObjectState = errors.New("invalid object state")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
