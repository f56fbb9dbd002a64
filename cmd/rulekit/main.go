// Command rulekit serves the validator over HTTP.
//
// Configuration comes from the environment, optionally seeded from a .env
// file. VALIDATOR_TRANSLATIONS names a directory of YAML or JSON catalogs
// merged over the bundled ones. Uploads referenced by object key are read from S3 when S3_BUCKET is
// set.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"

	"github.com/dmitrymomot/rulekit/pkg/api"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/file"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("rulekit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		logCfg    logger.Config
		serverCfg httpserver.Config
		validCfg  validatorConfig
		s3Cfg     file.S3Config
	)
	if err := errors.Join(
		config.Load(&logCfg),
		config.Load(&serverCfg),
		config.Load(&validCfg),
		config.Load(&s3Cfg),
	); err != nil {
		return err
	}

	logOpts, err := logger.FromConfig(logCfg)
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(requestid.LogExtractor()))...)
	logger.SetAsDefault(log)

	var extra []i18n.TranslationAdapter
	if validCfg.Translations != "" {
		extra = append(extra, i18n.NewFSAdapter(os.DirFS(validCfg.Translations), "."))
	}
	tr, err := validator.LoadTranslations(ctx, extra...)
	if err != nil {
		return err
	}

	v := validator.New(
		validator.WithLogger(log),
		validator.WithLanguage(tr.Messages(validCfg.Language)),
		validator.WithParser(validator.NewParser(validCfg.ParserCapacity)),
		validator.WithResolver(validator.NewCachingResolver(net.DefaultResolver, validCfg.ResolverTTL)),
	)

	opts := []api.Option{
		api.WithValidator(v),
		api.WithTranslator(tr),
		api.WithLogger(log),
		api.WithDefaultLanguage(validCfg.Language),
		api.WithStrict(validCfg.Strict),
		api.WithMaxBodySize(validCfg.MaxBodySize),
		api.WithMaxFormMemory(validCfg.MaxFormMemory),
	}
	if s3Cfg.Bucket != "" {
		objects, err := file.NewS3Source(ctx, s3Cfg)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithObjectStore(objects))
		log.InfoContext(ctx, "object store enabled", slog.String("bucket", s3Cfg.Bucket))
	}

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, api.New(opts...).Routes())
}
