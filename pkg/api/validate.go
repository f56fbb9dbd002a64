package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/rulekit/pkg/file"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Form values of a multipart request that are not fields.
const (
	formRules   = "rules"
	formStrict  = "strict"
	formObjects = "objects"
)

// ValidateRequest is the JSON body of POST /validate.
type ValidateRequest struct {
	Fields  map[string]any    `json:"fields"`
	Rules   validator.Rules   `json:"rules"`
	Strict  *bool             `json:"strict,omitempty"`
	Objects map[string]string `json:"objects,omitempty"`
}

// Validate checks the request's fields against its rules.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := i18n.SetLocale(r.Context(), h.requestLanguage(r))
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	req, uploads, err := h.decode(r)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var sources file.Sources
	if uploads != nil {
		sources = append(sources, uploads)
	}
	if len(req.Objects) > 0 {
		if h.objects == nil {
			h.badRequest(w, r, ErrObjectsUnsupported)
			return
		}
		sources = append(sources, objectRefs{src: h.objects.WithKeys(req.Objects), keys: req.Objects})
	}

	lang := i18n.GetLocale(ctx)
	opts := []validator.SessionOption{
		validator.WithContext(ctx),
		validator.InLanguage(h.messages(lang)),
	}
	if len(sources) > 0 {
		opts = append(opts, validator.WithFiles(sources))
	}
	strict := h.strict
	if req.Strict != nil {
		strict = *req.Strict
	}
	if strict {
		opts = append(opts, validator.Strict())
	}

	session := h.validator.Make(req.Fields, req.Rules, opts...)
	err = session.Validate()

	var cfgErr *validator.ConfigError
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "validation passed", logger.Language(lang), logger.Failures(0))
		writeJSON(w, http.StatusOK, ValidationResult{Valid: true, Language: lang})
	case errors.As(err, &cfgErr):
		h.logger.WarnContext(ctx, "invalid rule configuration", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
			Code:    "invalid_rules",
			Message: err.Error(),
			Field:   cfgErr.Field,
			Rule:    cfgErr.Rule,
		}})
	default:
		failures := session.Failures()
		h.logger.InfoContext(ctx, "validation failed", logger.Language(lang), logger.Failures(len(failures)))
		writeJSON(w, http.StatusUnprocessableEntity, ValidationResult{
			Language: lang,
			Errors:   session.Errors(),
			Failures: failureDetails(failures),
		})
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.DebugContext(r.Context(), "rejected request", logger.Error(err))

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err)
	case errors.Is(err, ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err)
	case errors.Is(err, ErrMissingRules):
		writeError(w, http.StatusBadRequest, "missing_rules", err)
	case errors.Is(err, ErrObjectsUnsupported):
		writeError(w, http.StatusBadRequest, "objects_unsupported", err)
	default:
		writeError(w, http.StatusBadRequest, "invalid_body", err)
	}
}

// decode reads a JSON or multipart request. The returned source is non-nil
// for multipart requests.
func (h *Handler) decode(r *http.Request) (ValidateRequest, file.Source, error) {
	var req ValidateRequest

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json", "":
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return req, nil, ErrMissingRules
			}
			return req, nil, joinBody(err)
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxMemory); err != nil {
			return req, nil, joinBody(err)
		}
		if err := decodeForm(r, &req); err != nil {
			return req, nil, err
		}
		if len(req.Rules) == 0 {
			return req, nil, ErrMissingRules
		}
		return req, file.NewMultipartSource(r.MultipartForm), nil
	default:
		return req, nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mediaType)
	}

	if len(req.Rules) == 0 {
		return req, nil, ErrMissingRules
	}
	return req, nil, nil
}

func decodeForm(r *http.Request, req *ValidateRequest) error {
	form := r.MultipartForm
	req.Fields = make(map[string]any, len(form.Value))

	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		switch name {
		case formRules:
			if err := json.Unmarshal([]byte(values[0]), &req.Rules); err != nil {
				return fmt.Errorf("%w: rules: %v", ErrInvalidBody, err)
			}
		case formObjects:
			if err := json.Unmarshal([]byte(values[0]), &req.Objects); err != nil {
				return fmt.Errorf("%w: objects: %v", ErrInvalidBody, err)
			}
		case formStrict:
			strict, err := strconv.ParseBool(values[0])
			if err != nil {
				return fmt.Errorf("%w: strict: %v", ErrInvalidBody, err)
			}
			req.Strict = &strict
		default:
			if len(values) == 1 {
				req.Fields[name] = values[0]
				continue
			}
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = v
			}
			req.Fields[name] = list
		}
	}
	return nil
}

func joinBody(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidBody, err)
}

// objectRefs serves only the fields a request mapped to object keys, so the
// store is never asked about other absent fields.
type objectRefs struct {
	src  *file.S3Source
	keys map[string]string
}

func (o objectRefs) Lookup(ctx context.Context, field string) (file.Info, error) {
	if _, ok := o.keys[field]; !ok {
		return file.Info{}, fmt.Errorf("%w: %s", file.ErrFileNotFound, field)
	}
	return o.src.Lookup(ctx, field)
}
