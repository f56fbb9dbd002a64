package validator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/file"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// MaxContentSize caps how much of an upload the content rules read.
const MaxContentSize = 32 << 20

// content returns the bytes the image, mimetypes and dimensions rules
// inspect: a []byte or non-empty string value, or the attached upload.
func content(ctx context.Context, in Input) ([]byte, bool) {
	switch v := indirect(in.Value).(type) {
	case []byte:
		return v, len(v) > 0
	case string:
		return []byte(v), v != ""
	}

	info, ok := in.Upload(ctx)
	if !ok || !info.OK() {
		return nil, false
	}
	data, err := info.ReadAll(ctx, MaxContentSize)
	if err != nil {
		in.Logger().WarnContext(ctx, "reading upload failed", logger.Field(in.Field), logger.Error(err))
		return nil, false
	}
	return data, true
}

// checkFile passes for a successful upload.
func checkFile(ctx context.Context, in Input) Outcome {
	info, ok := in.Upload(ctx)
	return Check(ok && info.OK())
}

// decodable lists the formats image.DecodeConfig understands here.
var decodable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// checkImage sniffs the content type. PNG, JPEG and GIF data must also
// carry a readable header.
func checkImage(ctx context.Context, in Input) Outcome {
	data, ok := content(ctx, in)
	if !ok {
		return Outcome{}
	}
	mime := file.DetectMIMEBytes(data)
	if !file.IsImageMIME(mime) {
		return Outcome{}
	}
	if decodable[mime] {
		_, _, err := image.DecodeConfig(bytes.NewReader(data))
		return Check(err == nil)
	}
	return Pass()
}

// checkMIMETypes matches the sniffed content type against the arguments,
// which may use wildcards such as image/*. Without arguments nothing matches.
func checkMIMETypes(ctx context.Context, in Input) Outcome {
	data, ok := content(ctx, in)
	if !ok || len(in.Args) == 0 {
		return Outcome{}
	}
	mime := file.DetectMIMEBytes(data)
	for _, pattern := range in.Args {
		if file.MatchMIME(mime, pattern) {
			return Pass()
		}
	}
	return Outcome{}
}

// dimensions are the constraints of the dimensions rule. Zero means unset.
type dimensions struct {
	minWidth, maxWidth, width    int
	minHeight, maxHeight, height int
	ratio                        float64
}

func parseDimensions(args []string) (dimensions, error) {
	var d dimensions
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return d, fmt.Errorf("%w: dimension %q is not key=value", ErrInvalidArgument, arg)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		if key == "ratio" {
			r, err := parseRatio(val)
			if err != nil {
				return d, err
			}
			d.ratio = r
			continue
		}

		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return d, fmt.Errorf("%w: dimension %s=%q is not a size", ErrInvalidArgument, key, val)
		}
		switch key {
		case "min_width":
			d.minWidth = n
		case "max_width":
			d.maxWidth = n
		case "width":
			d.width = n
		case "min_height":
			d.minHeight = n
		case "max_height":
			d.maxHeight = n
		case "height":
			d.height = n
		default:
			return d, fmt.Errorf("%w: unknown dimension %q", ErrInvalidArgument, key)
		}
	}
	return d, nil
}

// parseRatio reads "1.5" or "3/2".
func parseRatio(s string) (float64, error) {
	num, den, isFraction := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: ratio %q", ErrInvalidArgument, s)
	}
	if !isFraction {
		return n, nil
	}
	dn, err := strconv.ParseFloat(den, 64)
	if err != nil || dn <= 0 {
		return 0, fmt.Errorf("%w: ratio %q", ErrInvalidArgument, s)
	}
	return n / dn, nil
}

const ratioTolerance = 1e-6

func (d dimensions) allow(w, h int) bool {
	switch {
	case d.width > 0 && w != d.width,
		d.height > 0 && h != d.height,
		d.minWidth > 0 && w < d.minWidth,
		d.maxWidth > 0 && w > d.maxWidth,
		d.minHeight > 0 && h < d.minHeight,
		d.maxHeight > 0 && h > d.maxHeight:
		return false
	case d.ratio > 0:
		return h > 0 && math.Abs(float64(w)/float64(h)-d.ratio) < ratioTolerance
	}
	return true
}

// checkDimensions reads the image size and applies min_width, max_width,
// width, min_height, max_height, height and ratio constraints.
func checkDimensions(ctx context.Context, in Input) Outcome {
	data, ok := content(ctx, in)
	if !ok {
		return Outcome{}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Outcome{}
	}
	d, err := parseDimensions(in.Args)
	if err != nil {
		return Invalid(err)
	}
	return Check(d.allow(cfg.Width, cfg.Height))
}
