package trackers

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MMichael-S/request-log-analyzer/export"
	"github.com/MMichael-S/request-log-analyzer/request"
)

// ErrUnknownTracker is returned when a symbolic tracker type cannot be
// resolved against the registry. Resolution failures surface at
// registration time, before any request is processed.
var ErrUnknownTracker = errors.New("unknown tracker type")

// Tracker defines the contract implemented by pluggable analyzers.
//
// Trackers receive every request accepted by their ShouldUpdate predicate
// and accumulate private state across the run. They are driven through a
// fixed lifecycle: Prepare once, Update zero or more times, Finalize once.
// Implementations must be independent of each other within a pass because
// all trackers observe the same request stream.
type Tracker interface {
	Prepare()
	ShouldUpdate(req *request.Request) bool
	Update(req *request.Request) error
	Finalize()
	Title() string
	Export() export.Value
}

// Factory creates tracker instances from configuration options.
//
// Factories are registered under a stable identifier so the summarizer can
// create the required tracker for each declaration during setup.
type Factory func(opts Options) (Tracker, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register installs a tracker factory under the given identifier.
func Register(id string, factory Factory) {
	if id == "" {
		panic("tracker id must not be empty")
	}
	if factory == nil {
		panic("tracker factory must not be nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("tracker factory for %s already registered", id))
	}
	registry[id] = factory
}

// Registered reports whether a factory exists for the identifier.
func Registered(id string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[id]
	return ok
}

// Instantiate resolves the identifier and constructs a tracker with the
// provided options.
func Instantiate(id string, opts Options) (Tracker, error) {
	registryMu.RLock()
	factory, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTracker, id)
	}
	return factory(opts)
}

// RegisteredIDs returns the sorted identifiers of all known tracker types.
func RegisteredIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
