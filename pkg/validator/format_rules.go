package validator

import (
	"context"
	"encoding/json"
	"net"
	"net/url"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

var formats = sync.OnceValue(func() *playground.Validate {
	return playground.New()
})

// checkTag runs a go-playground validator tag against a string value.
func checkTag(in Input, tag string) Outcome {
	s, ok := stringValue(in.Value)
	if !ok || s == "" {
		return Outcome{}
	}
	return Check(formats().Var(s, tag) == nil)
}

func checkEmail(_ context.Context, in Input) Outcome {
	return checkTag(in, "email")
}

// checkURL requires an absolute URL with a scheme.
func checkURL(_ context.Context, in Input) Outcome {
	return checkTag(in, "url")
}

// checkIP accepts IPv4 and IPv6 addresses; ip:v4 and ip:v6 restrict the family.
func checkIP(_ context.Context, in Input) Outcome {
	switch strings.ToLower(in.Arg(0)) {
	case "":
		return checkTag(in, "ip")
	case "v4", "ipv4":
		return checkTag(in, "ipv4")
	case "v6", "ipv6":
		return checkTag(in, "ipv6")
	default:
		return Invalidf("ip family %q is not v4 or v6", in.Arg(0))
	}
}

func checkJSON(_ context.Context, in Input) Outcome {
	switch v := indirect(in.Value).(type) {
	case string:
		return Check(v != "" && json.Valid([]byte(v)))
	case json.RawMessage:
		return Check(len(v) > 0 && json.Valid(v))
	}
	return Outcome{}
}

// checkActiveURL passes when the host of the value, a URL or a bare host
// name, resolves to at least one address.
func checkActiveURL(ctx context.Context, in Input) Outcome {
	s, ok := stringValue(in.Value)
	if !ok {
		return Outcome{}
	}
	host := hostOf(strings.TrimSpace(s))
	if host == "" {
		return Outcome{}
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return Outcome{}
	}
	addrs, err := in.Resolver().LookupHost(ctx, ascii)
	if err != nil {
		in.Logger().DebugContext(ctx, "host lookup failed", logger.Field(in.Field), logger.Error(err))
		return Outcome{}
	}
	return Check(len(addrs) > 0)
}

func hostOf(s string) string {
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	host, _, _ := strings.Cut(s, "/")
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
