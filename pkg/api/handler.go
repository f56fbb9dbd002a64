package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rulekit/pkg/file"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

const (
	defaultMaxBodySize   = 32 << 20
	defaultMaxFormMemory = 8 << 20
)

// Handler serves the validation endpoints.
type Handler struct {
	validator  *validator.Validator
	translator *i18n.Translator
	logger     *slog.Logger
	objects    *file.S3Source
	maxBody    int64
	maxMemory  int64
	language   string
	strict     bool
	languages  []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithValidator sets the validator. The package default is used otherwise.
func WithValidator(v *validator.Validator) Option {
	return func(h *Handler) {
		if v != nil {
			h.validator = v
		}
	}
}

// WithTranslator sets the message catalogs. The bundled ones are used
// otherwise.
func WithTranslator(tr *i18n.Translator) Option {
	return func(h *Handler) {
		if tr != nil {
			h.translator = tr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithObjectStore lets requests reference uploads stored in S3.
func WithObjectStore(src *file.S3Source) Option {
	return func(h *Handler) { h.objects = src }
}

// WithMaxBodySize limits the request body. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// WithMaxFormMemory limits the part of a multipart form kept in memory.
// Non-positive values are ignored.
func WithMaxFormMemory(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}

// WithDefaultLanguage sets the language used when the request does not pick
// a loaded one.
func WithDefaultLanguage(lang string) Option {
	return func(h *Handler) {
		if lang != "" {
			h.language = lang
		}
	}
}

// WithStrict makes strict mode the default for requests that do not set it.
func WithStrict(strict bool) Option {
	return func(h *Handler) { h.strict = strict }
}

// New returns a Handler.
func New(opts ...Option) *Handler {
	h := &Handler{
		validator: validator.Default(),
		logger:    slog.New(slog.DiscardHandler),
		maxBody:   defaultMaxBodySize,
		maxMemory: defaultMaxFormMemory,
		language:  i18n.DefaultLanguage,
		languages: []string{i18n.DefaultLanguage},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.translator == nil {
		if tr, err := validator.Bundled(); err == nil {
			h.translator = tr
		}
	}
	if h.translator != nil {
		h.languages = h.translator.Languages()
	}
	h.logger = h.logger.With(logger.Component("api"))
	return h
}

// Routes returns the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/validate", h.Validate)
	r.Get("/rules", h.Rules)
	r.Get("/healthz", httpserver.HealthHandler(h.logger, map[string]httpserver.Check{
		"translations": h.checkTranslations,
	}))
	return r
}

// Rules lists the registered rules, the type rules among them and the
// languages with a catalog.
func (h *Handler) Rules(w http.ResponseWriter, _ *http.Request) {
	reg := h.validator.Registry()
	names := reg.Names()

	list := RuleList{
		Rules:     names,
		TypeRules: make([]string, 0),
		Languages: h.languages,
	}
	for _, name := range names {
		if reg.IsTypeRule(name) {
			list.TypeRules = append(list.TypeRules, name)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) checkTranslations(context.Context) error {
	if h.translator == nil {
		_, err := validator.Bundled()
		return err
	}
	if !slices.Contains(h.translator.Languages(), h.language) {
		return fmt.Errorf("default language %q has no catalog", h.language)
	}
	return nil
}

// messages returns the catalog of lang.
func (h *Handler) messages(lang string) validator.Language {
	if h.translator == nil {
		return validator.InLanguageOf(lang)
	}
	return h.translator.Messages(lang)
}

// requestLanguage picks the message language: the "lang" query parameter when it
// names a loaded language, then Accept-Language, then the default.
func (h *Handler) requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" && slices.Contains(h.languages, lang) {
		return lang
	}
	return i18n.Negotiate(r.Header.Get("Accept-Language"), h.languages, h.language)
}
