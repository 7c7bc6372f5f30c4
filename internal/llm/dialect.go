package llm

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoContent signals that the provider responded successfully but produced
// no usable text, for example when every candidate was filtered out.
var ErrNoContent = errors.New("llm: response contained no content")

// Dialect maps universal completion types to/from a specific provider's HTTP
// format. Each provider gets its own implementation in a subpackage.
type Dialect interface {
	// Name returns the dialect identifier (e.g., "gemini").
	Name() string

	// GeneratePath returns the API endpoint path for the given model.
	GeneratePath(model string) string

	// BuildRequest maps a universal CompletionRequest to the provider's JSON
	// request body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON response body to a universal
	// CompletionResponse. Returns ErrNoContent when the response carries no text.
	ParseResponse(body []byte) (*CompletionResponse, error)
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry. Typically called from
// init() in dialect driver packages, so importing the driver registers it.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}
