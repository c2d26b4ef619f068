package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/cache"
	"github.com/jonwraymond/docsearch/config"
	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
	"github.com/jonwraymond/docsearch/logging"
	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "docsearch",
	Short:         "Documentation search over a prebuilt full-text index",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to YAML config (default: config/<env>.yaml when present)")
}

// app holds everything a subcommand needs to search.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	adapter  *search.Adapter
	searcher search.Searcher
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		candidate := fmt.Sprintf("config/%s.yaml", config.GetEnv())
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path == "" {
		return config.Parse([]byte(envConfig))
	}
	return config.Load(path)
}

// envConfig is used when no config file is found.
const envConfig = `
search:
  corpus_path: ${DOCSEARCH_CORPUS}
  index_path: ${DOCSEARCH_INDEX}
  base_url: ${DOCSEARCH_BASE_URL:-/}
http:
  port: ${PORT:-8080}
logging:
  level: ${LOG_LEVEL}
`

// newApp loads config, logger, corpus and index, and assembles the
// searcher chain: adapter -> cache (optional) -> metrics.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	docs, err := corpus.LoadFile(cfg.Search.CorpusPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := search.Options{
		Corpus:  docs,
		BaseURL: cfg.Search.BaseURL,
		MaxHits: cfg.Search.MaxHits,
		Logger:  log,
	}
	if err := a.attachIndex(&opts); err != nil {
		a.Close()
		return nil, err
	}

	adapter, err := search.New(opts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.adapter = adapter
	a.closers = append(a.closers, func() { _ = adapter.Close() })

	var s search.Searcher = adapter
	if cfg.Cache.Enabled {
		store, err := cache.Dial(cfg.Cache.Addrs, cfg.Cache.Password)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("dial cache: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.Ping(ctx); err != nil {
			log.Warn("cache unreachable, searches will fall through", zap.Error(err))
		}
		s = cache.New(s, store, cache.Options{
			Namespace:  adapter.Fingerprint(),
			KeyPrefix:  cfg.Cache.KeyPrefix,
			TTL:        cfg.Cache.TTL(),
			CacheTotal: metrics.CacheTotal,
			Logger:     log,
		})
	}
	a.searcher = metrics.Instrument(s)

	log.Info("search ready",
		zap.Int("documents", len(docs)),
		zap.String("fingerprint", adapter.Fingerprint()),
		zap.Bool("cache", cfg.Cache.Enabled),
	)
	return a, nil
}

// attachIndex fills opts from cfg.Search.IndexPath: a bleve directory is
// opened read-only and a file is used as a serialized snapshot.
func (a *app) attachIndex(opts *search.Options) error {
	path := a.cfg.Search.IndexPath
	info, err := os.Stat(path)
	if err != nil {
		return &search.IndexError{Op: search.OpLoad, Err: err}
	}
	if info.IsDir() {
		idx, err := index.Open(path)
		if err != nil {
			return &search.IndexError{Op: search.OpLoad, Err: err}
		}
		opts.Index = idx
		a.closers = append(a.closers, func() { _ = idx.Close() })
		return nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return &search.IndexError{Op: search.OpLoad, Err: err}
	}
	opts.IndexBlob = blob
	return nil
}

// inputArg returns args[0], or stdin when args is empty or "-".
func inputArg(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
