package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/reqkit/component"
	"github.com/kbukum/reqkit/config"
	"github.com/kbukum/reqkit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	started  bool
	stopped  bool
	order    *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	m.started = true
	if m.order != nil {
		*m.order = append(*m.order, "start:"+m.name)
	}
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	m.stopped = true
	if m.order != nil {
		*m.order = append(*m.order, "stop:"+m.name)
	}
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) component.Health {
	if !m.started || m.stopped {
		return component.Health{Name: m.name, Status: component.StatusUnhealthy, Message: "down"}
	}
	return component.Health{Name: m.name, Status: component.StatusHealthy}
}

func (m *mockComponent) Describe() component.Description {
	return component.Description{Name: m.name, Type: "mock", Details: "in memory"}
}

func newApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "test-svc", Version: "1.0.0"}}
	app, err := NewApp(cfg, append([]Option{WithLogger(logger.Nop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newApp(t)
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil || app.Summary == nil {
		t.Fatal("expected registry, logger and summary")
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got %q", app.Cfg.Environment)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("unexpected timeout %s", app.gracefulTimeout)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "svc", Environment: "qa"}}
	if _, err := NewApp(cfg, WithLogger(logger.Nop())); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewApp_InitializesGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "global-svc"}}
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger != logger.GetGlobalLogger() {
		t.Error("expected the global logger")
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newApp(t, WithGracefulTimeout(time.Second))
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected 1s, got %s", app.gracefulTimeout)
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	var order []string
	app := newApp(t)
	a := &mockComponent{name: "a", order: &order}
	b := &mockComponent{name: "b", order: &order}
	app.RegisterComponent(a)
	app.RegisterComponent(b)
	app.OnStart(func(context.Context) error { order = append(order, "hook:start"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "hook:stop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	want := "start:a,start:b,hook:start,task,hook:stop,stop:b,stop:a"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app := newApp(t)
	app.RegisterComponent(&mockComponent{name: "a", stopErr: errors.New("stop failed")})

	taskErr := errors.New("task failed")
	if err := app.RunTask(context.Background(), func(context.Context) error { return taskErr }); err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StopError(t *testing.T) {
	app := newApp(t)
	app.RegisterComponent(&mockComponent{name: "a", stopErr: errors.New("stop failed")})

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "stop failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_StartFailure(t *testing.T) {
	app := newApp(t)
	first := &mockComponent{name: "first"}
	app.RegisterComponent(first)
	app.RegisterComponent(&mockComponent{name: "broken", startErr: errors.New("boom")})

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task must not run after a failed start")
	}
	if !first.stopped {
		t.Error("started components must be stopped")
	}
}

func TestRunTask_HookFailure(t *testing.T) {
	app := newApp(t)
	app.OnStart(func(context.Context) error { return errors.New("no exporter") })
	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected hook error, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app := newApp(t)
	app.RegisterComponent(&mockComponent{name: "idle"})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "idle=unhealthy(down)") {
		t.Errorf("unexpected ready check result %v", err)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(t, WithSummary(&buf))
	app.RegisterComponent(&mockComponent{name: "a"})
	app.RegisterComponent(&mockComponent{name: "b"})

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"test-svc 1.0.0 started in", "├── ✓ a [mock] in memory", "└── ✓ b [mock]", "2/2 components healthy"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_NoWriter(t *testing.T) {
	s := NewSummary("svc", "", nil)
	s.Display(context.Background(), component.NewRegistry())
}

func TestShutdown(t *testing.T) {
	app := newApp(t)
	c := &mockComponent{name: "a"}
	app.RegisterComponent(c)
	if err := app.Components.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !c.stopped {
		t.Error("expected component stopped")
	}
}
