package widget

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/metrics"
)

// Registry tracks mounted widget shells by slot name. A slot is the host
// page's container for one widget instance.
type Registry struct {
	mu      sync.Mutex
	factory func() *Shell
	mounted map[string]*Shell
	metrics metrics.Metrics
}

// NewRegistry creates a Registry that builds shells with the given factory.
func NewRegistry(factory func() *Shell, metricsSvc metrics.Metrics) *Registry {
	return &Registry{
		factory: factory,
		mounted: make(map[string]*Shell),
		metrics: metricsSvc,
	}
}

// Mount renders a widget into the named slot. Mounting into an empty slot
// name logs and no-ops; mounting an occupied slot returns the existing shell.
func (r *Registry) Mount(slot string) *Shell {
	if slot == "" {
		log.Error("Cannot mount widget: no slot given")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if shell, ok := r.mounted[slot]; ok {
		log.Warn("Widget already mounted", "slot", slot)
		return shell
	}

	shell := r.factory()
	r.mounted[slot] = shell
	r.metrics.IncMounts()
	log.Info("Widget mounted", "slot", slot)
	return shell
}

// Unmount removes the widget from the named slot. Logs and no-ops when the
// slot holds nothing.
func (r *Registry) Unmount(slot string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shell, ok := r.mounted[slot]
	if !ok {
		log.Warn("Nothing mounted", "slot", slot)
		return
	}
	shell.Close()
	delete(r.mounted, slot)
	log.Info("Widget unmounted", "slot", slot)
}

// Get returns the shell mounted in the slot, or nil.
func (r *Registry) Get(slot string) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounted[slot]
}

// AutoMount mounts into the configured marker slot at startup, if one is set.
func (r *Registry) AutoMount(slot string) *Shell {
	if slot == "" {
		return nil
	}
	log.Info("Auto-mounting widget", "slot", slot)
	return r.Mount(slot)
}
