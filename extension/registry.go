// registry.go holds the set of registered extensions.
//
// Extensions self-register during init(), before main() runs, so the
// registry is written only while packages initialise and read afterwards.
// Registration order is kept so commands and event handlers run in a
// deterministic order.

package extension

import "sync"

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // registration order
)

// Register adds an extension to the registry. Called from init() functions.
// Registering a name twice is a programming error and panics, as
// database/sql.Register does.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}

	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// NoConfigCommands returns the commands of all Configless extensions.
func NoConfigCommands() map[string]bool {
	cmds := make(map[string]bool)
	for _, ext := range All() {
		if c, ok := ext.(Configless); ok {
			for _, name := range c.NoConfigCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}
