package i18n

import "errors"

var (
	ErrNilAdapter         = errors.New("translation adapter is nil")
	ErrEmptyLanguage      = errors.New("empty language code")
	ErrInvalidCatalog     = errors.New("invalid translation catalog")
	ErrUnsupportedFormat  = errors.New("unsupported translation file format")
	ErrFailedToParseJSON  = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML  = errors.New("failed to parse YAML content")
	ErrFailedToReadFile   = errors.New("failed to read translation file")
	ErrFailedToReadDir    = errors.New("failed to read translation directory")
	ErrLoadingCancelled   = errors.New("loading translations cancelled")
	ErrLanguageNotLoaded  = errors.New("language not loaded")
	ErrNoTranslationFiles = errors.New("no translation files found")
)
