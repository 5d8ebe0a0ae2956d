package fetch_test

import (
	"context"
	"testing"

	"github.com/kbukum/reqkit/component"
	"github.com/kbukum/reqkit/fetch"
	"github.com/kbukum/reqkit/fetch/fetchtest"
)

func TestComponentLifecycle(t *testing.T) {
	c := fetch.NewComponent(fetch.Config{BaseURL: "https://api.example.com"})
	if c.Name() != "fetch" {
		t.Errorf("expected default name, got %q", c.Name())
	}
	if c.Health(context.Background()).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before start")
	}

	fetchtest.T(t).Start(c)

	if c.Dispatcher() == nil {
		t.Fatal("expected dispatcher after start")
	}
	if c.Health(context.Background()).Status != component.StatusHealthy {
		t.Error("expected healthy after start")
	}
	if d := c.Describe(); d.Type != "fetch" || d.Details != "https://api.example.com" {
		t.Errorf("unexpected description %+v", d)
	}
}

func TestComponentStartInvalid(t *testing.T) {
	c := fetch.NewComponent(fetch.Config{Name: "bad", BaseURL: "ftp://x"})
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail")
	}
}

func TestComponentInRegistry(t *testing.T) {
	r := component.NewRegistry()
	f := fetchtest.NewFactory(fetchtest.Loaded(200, "ok"))
	if err := r.Register(fetch.NewComponent(fetch.Config{Name: "api"}, fetch.WithHandleFactory(f.New))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	defer r.StopAll(context.Background())

	c := r.Get("api").(*fetch.Component)
	got, err := fetchtest.Await(t, c.Dispatcher().GetText(context.Background(), "/x"))
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
}
