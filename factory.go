package scriptbridge

import (
	"fmt"
	"log/slog"
	"sync"

	risorEngine "github.com/robbyt/go-scriptbridge/engines/risor"
	starlarkEngine "github.com/robbyt/go-scriptbridge/engines/starlark"
	"github.com/robbyt/go-scriptbridge/engines/types"
	"github.com/robbyt/go-scriptbridge/platform/script"
)

// Metadata describes an engine implementation: names and versions the host
// can use for discovery and registration.
type Metadata struct {
	EngineName      string
	EngineVersion   string
	LanguageName    string
	LanguageVersion string

	// Names are the aliases the engine can be registered under.
	Names []string

	// FileExtensions are source file extensions, without the leading dot.
	FileExtensions []string

	// MimeTypes are the media types associated with the language.
	MimeTypes []string
}

// Factory provides engine metadata and constructs engine instances.
type Factory interface {
	Metadata() Metadata
	NewEngine(handler slog.Handler) (script.Engine, error)
}

// NewFactory returns a factory for the given engine type.
func NewFactory(t types.Type) (Factory, error) {
	switch t {
	case types.Starlark:
		return &starlarkFactory{}, nil
	case types.Risor:
		return &risorFactory{}, nil
	default:
		return nil, fmt.Errorf("no factory for engine type %q", t)
	}
}

// defaultFactory is the process-wide default, constructed exactly once on
// first demand and shared for the remaining process lifetime. Construction
// only populates metadata; no teardown is needed.
var defaultFactory = sync.OnceValue(func() Factory {
	return &starlarkFactory{}
})

// DefaultFactory returns the process-wide default engine factory. Safe for
// concurrent first access; every caller observes the same instance.
func DefaultFactory() Factory {
	return defaultFactory()
}

type starlarkFactory struct{}

func (f *starlarkFactory) Metadata() Metadata {
	return Metadata{
		EngineName:      "go-scriptbridge Starlark engine",
		EngineVersion:   "1.0",
		LanguageName:    "Starlark",
		LanguageVersion: "go.starlark.net",
		Names:           []string{"starlark", "star"},
		FileExtensions:  []string{"star", "bzl"},
		MimeTypes:       []string{"application/x-starlark", "text/x-starlark"},
	}
}

func (f *starlarkFactory) NewEngine(handler slog.Handler) (script.Engine, error) {
	return starlarkEngine.New(handler), nil
}

type risorFactory struct{}

func (f *risorFactory) Metadata() Metadata {
	return Metadata{
		EngineName:      "go-scriptbridge Risor engine",
		EngineVersion:   "1.0",
		LanguageName:    "Risor",
		LanguageVersion: "github.com/risor-io/risor",
		Names:           []string{"risor", "rsr"},
		FileExtensions:  []string{"risor", "rsr"},
		MimeTypes:       []string{"application/x-risor", "text/x-risor"},
	}
}

func (f *risorFactory) NewEngine(handler slog.Handler) (script.Engine, error) {
	return risorEngine.New(handler), nil
}

var (
	_ Factory = (*starlarkFactory)(nil)
	_ Factory = (*risorFactory)(nil)
)
