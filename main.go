package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	restapi "github.com/hedisam/chaininvestigator/api/rest"
	"github.com/hedisam/chaininvestigator/internal/analyzer"
	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/classify"
	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/chaininvestigator/internal/enrich"
	"github.com/hedisam/chaininvestigator/internal/explorer"
	"github.com/hedisam/chaininvestigator/internal/investigation"
	"github.com/hedisam/chaininvestigator/internal/labels"
	"github.com/hedisam/chaininvestigator/internal/lookup"
	"github.com/hedisam/chaininvestigator/internal/report"
	"github.com/hedisam/chaininvestigator/internal/retry"
	"github.com/hedisam/chaininvestigator/internal/risk"
	"github.com/hedisam/chaininvestigator/internal/store/memdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type Options struct {
	ServerAddr      string
	OutputDir       string
	EnableTron      bool
	EnableBalances  bool
	CacheTTL        time.Duration
	CacheMaxEntries uint
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	HTTPTimeout     time.Duration
	LabelsConfig    string
	LabelsSnapshot  string
	LabelsRefresh   time.Duration
	AIModel         string
	Verbose         bool
}

// Env holds the secrets and endpoint overrides read from the environment or a .env file.
type Env struct {
	EtherscanKey   string
	CovalentKey    string
	OpenAIKey      string
	EtherscanURL   string
	TronScanURL    string
	CovalentURL    string
	OpenAIURL      string
	Port           string
	LabelsURLsJSON string
}

func main() {
	logger := logrus.New()

	// a missing .env is fine, the environment alone is enough
	envErr := godotenv.Load()

	var opts Options
	flag.StringVar(&opts.ServerAddr, "server-addr", "localhost:8080", "Server addr to serve the http server on. PORT overrides its port")
	flag.StringVar(&opts.OutputDir, "output-dir", "outputs", "Directory rendered reports are written to")
	flag.BoolVar(&opts.EnableTron, "enable-tron", true, "Recognise and look up TRON identifiers")
	flag.BoolVar(&opts.EnableBalances, "enable-balances", true, "Fetch the optional account balances")
	flag.DurationVar(&opts.CacheTTL, "cache-ttl", lookup.DefaultTTL, "How long a successful lookup is reused")
	flag.UintVar(&opts.CacheMaxEntries, "cache-max-entries", cache.DefaultMaxEntries, "Maximum number of cached lookups")
	flag.IntVar(&opts.RetryAttempts, "retry-attempts", retry.DefaultAttempts, "Total attempts per explorer call")
	flag.DurationVar(&opts.RetryBaseDelay, "retry-base-delay", retry.DefaultBaseDelay, "Base delay between attempts, multiplied by the attempt number")
	flag.DurationVar(&opts.HTTPTimeout, "http-timeout", explorer.DefaultTimeout, "Timeout of a single explorer call")
	flag.StringVar(&opts.LabelsConfig, "labels-config", "", "Optional YAML file with label list sources, reloaded on change")
	flag.StringVar(&opts.LabelsSnapshot, "labels-snapshot", "labels.db", "Sqlite file keeping the last fetched label set. Empty disables it")
	flag.DurationVar(&opts.LabelsRefresh, "labels-refresh", labels.DefaultTTL, "Interval of the background label refresh")
	flag.StringVar(&opts.AIModel, "ai-model", enrich.DefaultModel, "Chat completion model used for the AI-assisted analysis")
	flag.BoolVar(&opts.Verbose, "v", false, "Verbose output")
	flag.Parse()

	env := loadEnv()
	opts.ServerAddr = applyPort(opts.ServerAddr, env.Port)
	ensureValidOpts(logger, opts)

	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if envErr != nil {
		logger.WithError(envErr).Debug("No .env file loaded")
	}

	err := custompromauto.RegisterRuntimeCollectors()
	if err != nil {
		logger.WithError(err).Fatal("Failed to register runtime metrics collectors")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lookupCache := cache.New(logger, cache.WithMaxEntries(opts.CacheMaxEntries))
	go lookupCache.StartSweeper(ctx, opts.CacheTTL)
	lookups := lookup.NewRunner(logger, lookupCache, retry.NewPolicy(logger, opts.RetryAttempts, opts.RetryBaseDelay), opts.CacheTTL)

	httpClient := explorer.NewHTTPClient(opts.HTTPTimeout)
	etherscan := explorer.NewEtherscan(logger, httpClient, env.EtherscanURL, env.EtherscanKey)
	tronscan := explorer.NewTronScan(logger, httpClient, env.TronScanURL)
	covalent := explorer.NewCovalent(logger, httpClient, env.CovalentURL, env.CovalentKey)

	labelProvider := mustLabelProvider(ctx, logger, opts, env)
	go labelProvider.StartRefresher(ctx, opts.LabelsRefresh)

	an := analyzer.New(
		logger,
		classify.New(opts.EnableTron),
		etherscan,
		tronscan,
		lookups,
		analyzer.WithBalances(opts.EnableBalances),
	)
	scorer := risk.New(logger, covalent, tronscan, labelProvider, lookups)
	enricher := enrich.New(logger, env.OpenAIKey, enrich.WithBaseURL(env.OpenAIURL), enrich.WithModel(opts.AIModel))
	renderer := report.NewRenderer(logger, opts.OutputDir)
	artifactStore := memdb.NewArtifactStore()

	investigator := investigation.NewService(logger, an, scorer, enricher, renderer, artifactStore)

	restServer := restapi.NewServer(logger, investigator, artifactStore, opts.OutputDir, version)
	mux := http.NewServeMux()
	restServer.Register(mux)

	// use a custom prom registry to avoid recording the default http handler metrics
	mux.Handle("/metrics", promhttp.HandlerFor(custompromauto.Registry(), promhttp.HandlerOpts{}))

	mustListenAndServe(ctx, logger, opts.ServerAddr, mux)
}

func loadEnv() Env {
	return Env{
		EtherscanKey:   os.Getenv("ETHERSCAN_API_KEY"),
		CovalentKey:    os.Getenv("COVALENT_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EtherscanURL:   os.Getenv("ETHERSCAN_BASE_URL"),
		TronScanURL:    os.Getenv("TRONSCAN_BASE_URL"),
		CovalentURL:    os.Getenv("COVALENT_BASE_URL"),
		OpenAIURL:      os.Getenv("OPENAI_BASE_URL"),
		Port:           os.Getenv("PORT"),
		LabelsURLsJSON: os.Getenv("LABELS_URLS_JSON"),
	}
}

func applyPort(addr, port string) string {
	if port == "" {
		return addr
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}

// mustLabelProvider builds the label provider from the default sources, the LABELS_URLS_JSON override and
// the optional sources file, which is watched and forces a refresh whenever it changes.
func mustLabelProvider(ctx context.Context, logger *logrus.Logger, opts Options, env Env) *labels.Provider {
	override, err := labels.ParseURLOverride(env.LabelsURLsJSON)
	if err != nil {
		logger.WithError(err).Fatal("Invalid LABELS_URLS_JSON")
	}
	base := labels.DefaultSources().Extend(override)

	var providerOpts []labels.Option
	if opts.LabelsSnapshot != "" {
		snapshot, err := labels.OpenSnapshot(ctx, opts.LabelsSnapshot)
		if err != nil {
			logger.WithError(err).Warn("Label snapshot unavailable, continuing without it")
		} else {
			providerOpts = append(providerOpts, labels.WithSnapshot(snapshot))
			go func() {
				<-ctx.Done()
				_ = snapshot.Close()
			}()
		}
	}

	if opts.LabelsConfig == "" {
		return labels.NewProvider(logger, nil, base, providerOpts...)
	}

	loader, err := labels.NewLoader(logger, opts.LabelsConfig)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load the label sources file")
	}
	provider := labels.NewProvider(logger, nil, loader.Config().Resolve(base), providerOpts...)
	loader.OnChange(func(cfg *labels.FileConfig) {
		provider.SetSources(cfg.Resolve(base))
		go provider.GetLabels(ctx, true)
	})

	stop, err := loader.Watch()
	if err != nil {
		logger.WithError(err).Warn("Label sources file will not be hot reloaded")
		return provider
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return provider
}

func mustListenAndServe(ctx context.Context, logger *logrus.Logger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.WithField("addr", addr).Info("Serving server...")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed with error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
	}
}

func ensureValidOpts(logger *logrus.Logger, opts Options) {
	if opts.ServerAddr == "" {
		logger.Error("--server-addr is required")
		flag.Usage()
		os.Exit(1)
	}
	if opts.OutputDir == "" {
		logger.Error("--output-dir is required")
		flag.Usage()
		os.Exit(1)
	}
	if opts.CacheTTL < time.Second {
		logger.Error("--cache-ttl is too small, it cannot be less than 1 second")
		flag.Usage()
		os.Exit(1)
	}
	if opts.CacheMaxEntries < 1 {
		logger.Error("--cache-max-entries is too small, it cannot be less than 1")
		flag.Usage()
		os.Exit(1)
	}
	if opts.RetryAttempts < 1 {
		logger.Error("--retry-attempts is too small, it cannot be less than 1")
		flag.Usage()
		os.Exit(1)
	}
	if opts.RetryBaseDelay < 0 {
		logger.Error("--retry-base-delay cannot be negative")
		flag.Usage()
		os.Exit(1)
	}
	if opts.HTTPTimeout < time.Second {
		logger.Error("--http-timeout is too small, it cannot be less than 1 second")
		flag.Usage()
		os.Exit(1)
	}
	if opts.LabelsRefresh < time.Minute {
		logger.Error("--labels-refresh is too small, it cannot be less than 1 minute")
		flag.Usage()
		os.Exit(1)
	}
}
