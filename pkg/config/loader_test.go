package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

type parserConfig struct {
	Capacity int    `env:"RULEKIT_TEST_CAPACITY" envDefault:"4096"`
	Strict   bool   `env:"RULEKIT_TEST_STRICT" envDefault:"false"`
	Language string `env:"RULEKIT_TEST_LANGUAGE" envDefault:"en"`
}

type cachedConfig struct {
	Name string `env:"RULEKIT_TEST_CACHED"`
}

type fileConfig struct {
	Name  string   `env:"RULEKIT_TEST_NAME"`
	Langs []string `env:"RULEKIT_TEST_LANGS" envSeparator:","`
	Port  int      `env:"RULEKIT_TEST_PORT"`
}

type requiredConfig struct {
	Bucket string `env:"RULEKIT_TEST_BUCKET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("reads the environment", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("RULEKIT_TEST_CAPACITY", "128")
		t.Setenv("RULEKIT_TEST_STRICT", "true")

		var cfg parserConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 128, cfg.Capacity)
		assert.True(t, cfg.Strict)
		assert.Equal(t, "en", cfg.Language)
	})

	t.Run("applies defaults", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("RULEKIT_TEST_CAPACITY")
		os.Unsetenv("RULEKIT_TEST_STRICT")

		var cfg parserConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, parserConfig{Capacity: 4096, Language: "en"}, cfg)
	})

	t.Run("parses each type once", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("RULEKIT_TEST_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("RULEKIT_TEST_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Name)

		var reloaded cachedConfig
		require.NoError(t, config.Reload(&reloaded))
		assert.Equal(t, "second", reloaded.Name)

		var after cachedConfig
		require.NoError(t, config.Load(&after))
		assert.Equal(t, "second", after.Name)
	})

	t.Run("reports missing required values", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("RULEKIT_TEST_BUCKET")

		var cfg requiredConfig
		err := config.Load(&cfg)

		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("rejects nil pointers and non-struct types", func(t *testing.T) {
		var cfg *parserConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)

		var n int
		assert.ErrorIs(t, config.Load(&n), config.ErrInvalidConfigType)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("reads env files", func(t *testing.T) {
		config.ResetCache()
		for _, k := range []string{"RULEKIT_TEST_NAME", "RULEKIT_TEST_LANGS", "RULEKIT_TEST_PORT"} {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}

		require.NoError(t, config.LoadEnv("testdata/.env.test"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, fileConfig{Name: "from_file", Langs: []string{"en", "de"}, Port: 9090}, cfg)
	})

	t.Run("keeps variables that are already set", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("RULEKIT_TEST_NAME", "from_env")

		require.NoError(t, config.LoadEnv("testdata/.env.test"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from_env", cfg.Name)
	})

	t.Run("fails for missing files", func(t *testing.T) {
		assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
	})
}
