package i18n_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "de", "pt-BR"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact match", "de", "de"},
		{"regional variant falls back to base", "de-AT,de;q=0.9", "de"},
		{"quality ordering is respected", "fr;q=0.5,de;q=0.8", "de"},
		{"regional supported tag", "pt-BR", "pt-BR"},
		{"unsupported language uses default", "ja", "en"},
		{"malformed header uses default", ";;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Negotiate(tt.header, supported, "en"))
		})
	}

	t.Run("oversized malformed header uses default", func(t *testing.T) {
		header := "de," + strings.Repeat("x", 5000)
		assert.Equal(t, "en", i18n.Negotiate(header, supported, "en"))
	})

	t.Run("no supported languages", func(t *testing.T) {
		assert.Equal(t, "en", i18n.Negotiate("de", nil, "en"))
	})
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	assert.Equal(t, "de", i18n.GetLocale(i18n.SetLocale(context.Background(), "de")))
}
