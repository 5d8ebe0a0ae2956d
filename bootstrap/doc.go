// Package bootstrap runs reqkit components through a uniform lifecycle.
//
// An App starts every registered component, runs OnStart hooks, reports
// component health, executes a finite task and then shuts everything down
// in reverse order. SIGINT and SIGTERM cancel the task's context.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(fetch.NewComponent(cfg.Fetch))
//	err = app.RunTask(ctx, func(ctx context.Context) error { ... })
package bootstrap
