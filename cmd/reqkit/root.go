package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/reqkit/bootstrap"
	"github.com/kbukum/reqkit/config"
	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/fileio"
	"github.com/kbukum/reqkit/hostfetch"
	"github.com/kbukum/reqkit/logger"
	"github.com/kbukum/reqkit/observability"
)

type rootOptions struct {
	configFile string
	envFile    string
	logLevel   string
	baseURL    string
	bearer     string
	summary    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "reqkit",
		Short:         "Issue HTTP requests through the reqkit transports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default: search ./config.yml, ./config/config.yml, ~/.reqkit/config.yml)")
	flags.StringVar(&opts.envFile, "env-file", "", ".env file to load before reading the environment")
	flags.StringVar(&opts.logLevel, "log-level", "", "override logging.level")
	flags.StringVar(&opts.baseURL, "base-url", "", "override fetch.base_url")
	flags.StringVar(&opts.bearer, "bearer", "", "bearer token sent on credentialed requests")
	flags.BoolVar(&opts.summary, "summary", false, "print the component summary to stderr")

	cmd.AddCommand(
		newGetCmd(opts),
		newPostCmd(opts),
		newHostCmd(opts),
		newDownloadCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// runtime is what a command task receives.
type runtime struct {
	app   *bootstrap.App[*config.Config]
	fetch *fetch.Component
	host  *hostfetch.Component
	files *fileio.Files
}

func (rt *runtime) dispatcher() *fetch.Dispatcher { return rt.fetch.Dispatcher() }

func (rt *runtime) adapter() *hostfetch.Adapter { return rt.host.Adapter() }

// components selects what run registers.
type components struct {
	fetch bool
	host  bool
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	var loaderOpts []config.LoaderOption
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(o.envFile))
	}
	cfg, err := config.Load(loaderOpts...)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.baseURL != "" {
		cfg.Fetch.BaseURL = o.baseURL
	}
	if o.bearer != "" {
		cfg.Fetch.Auth = fetch.BearerAuth(o.bearer)
	}
	return cfg, nil
}

// run builds the application for one command and executes task inside its
// lifecycle.
func (o *rootOptions) run(cmd *cobra.Command, need components, task func(ctx context.Context, rt *runtime) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	var appOpts []bootstrap.Option
	if o.summary {
		appOpts = append(appOpts, bootstrap.WithSummary(cmd.ErrOrStderr()))
	}
	app, err := bootstrap.NewApp(cfg, appOpts...)
	if err != nil {
		return err
	}

	metrics, err := setupObservability(cmd.Context(), app)
	if err != nil {
		return err
	}

	rt := &runtime{
		app:   app,
		files: fileio.New(fileio.WithLogger(logger.Get(logger.ComponentFileIO))),
	}
	if need.fetch {
		rt.fetch = fetch.NewComponent(cfg.Fetch,
			fetch.WithLogger(logger.Get(logger.ComponentFetch)),
			fetch.WithMetrics(metrics))
		if err := app.RegisterComponent(rt.fetch); err != nil {
			return err
		}
	}
	if need.host {
		var host hostfetch.HostFunc
		if !cfg.Host.Disabled {
			client, err := fetch.NewHTTPClient(cfg.Fetch.TLS)
			if err != nil {
				return err
			}
			host = hostfetch.NativeHost(client)
		}
		rt.host = hostfetch.NewComponent(host,
			hostfetch.WithFunctionName(cfg.Host.FunctionName),
			hostfetch.WithDefaultHeaders(cfg.Host.Headers),
			hostfetch.WithLogger(logger.Get(logger.ComponentHostFetch)),
			hostfetch.WithMetrics(metrics))
		if err := app.RegisterComponent(rt.host); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return task(ctx, rt)
	})
}

// setupObservability installs the OTLP providers the configuration asks for
// and registers their shutdown. Metrics are nil unless enabled.
func setupObservability(ctx context.Context, app *bootstrap.App[*config.Config]) (*observability.Metrics, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.Cfg
	var metrics *observability.Metrics

	if cfg.Observability.Tracing {
		tp, err := observability.InitTracer(ctx, cfg.Observability.TracerConfig(&cfg.ServiceConfig))
		if err != nil {
			return nil, err
		}
		app.OnStop(tp.Shutdown)
	}
	if cfg.Observability.Metrics {
		mp, err := observability.InitMeter(ctx, cfg.Observability.MeterConfig(&cfg.ServiceConfig))
		if err != nil {
			return nil, err
		}
		app.OnStop(mp.Shutdown)
		if metrics, err = observability.NewMetrics(observability.Meter(cfg.Name)); err != nil {
			return nil, err
		}
	}
	return metrics, nil
}
