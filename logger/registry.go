package logger

import (
	"sync"
)

// Component names used by reqkit packages.
const (
	ComponentFetch     = "fetch"
	ComponentHostFetch = "hostfetch"
	ComponentFileIO    = "fileio"
)

var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. Unregistered names resolve to the global
// logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults seeds the registry from the global logger. With no
// arguments it registers the reqkit component names.
func RegisterDefaults(names ...string) {
	if len(names) == 0 {
		names = []string{ComponentFetch, ComponentHostFetch, ComponentFileIO}
	}
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
