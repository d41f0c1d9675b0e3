// Package clients defines the read and write sides of a conversion and the
// registry that builds them from configuration.
//
// Client packages register a factory under a type name from init():
//
//	func init() {
//		clients.Default.RegisterReader("xml", New)
//	}
//
// and internal/clients/embedded imports every client package so a binary
// gets all of them with one blank import.
package clients

import (
	"context"
	"sort"
	"sync"

	"github.com/FocuswithJustin/xml2csv/core/cas"
	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/core/hierarchy"
	"github.com/FocuswithJustin/xml2csv/core/xml"
	"github.com/FocuswithJustin/xml2csv/internal/config"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
	"github.com/FocuswithJustin/xml2csv/internal/validation"
)

// ReadClient supplies the parsed document of a run. A nil document with a
// nil error means the source held no XML data.
type ReadClient interface {
	Read(ctx context.Context) (*xml.Document, error)
}

// WriteClient persists a flattened dataset.
type WriteClient interface {
	Write(ctx context.Context, ds *hierarchy.Dataset) error
}

// Checksummer is implemented by writers that can report digests of what
// they wrote. Checksum returns nil before a successful Write.
type Checksummer interface {
	Checksum() *cas.HashResult
}

// ReaderFactory builds a reader from its options (the config map minus "type").
type ReaderFactory func(opts map[string]string) (ReadClient, error)

// WriterFactory builds a writer from its options (the config map minus "type").
type WriterFactory func(opts map[string]string) (WriteClient, error)

// Registry maps client type names to factories.
type Registry struct {
	mu      sync.RWMutex
	readers map[string]ReaderFactory
	writers map[string]WriterFactory
}

// Default is the registry populated by the client packages' init functions.
var Default = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]ReaderFactory),
		writers: make(map[string]WriterFactory),
	}
}

// RegisterReader registers a reader factory, replacing any previous one.
func (r *Registry) RegisterReader(name string, f ReaderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers[name] = f
}

// RegisterWriter registers a writer factory, replacing any previous one.
func (r *Registry) RegisterWriter(name string, f WriterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[name] = f
}

// CreateReader builds the reader named by cfg's type.
func (r *Registry) CreateReader(cfg config.ClientConfig) (ReadClient, error) {
	typ := cfg.Type()
	if typ == "" {
		return nil, errors.NewValidation("reader.type", "is required")
	}

	r.mu.RLock()
	f, ok := r.readers[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFound("reader type", typ)
	}

	client, err := f(cfg.Options())
	if err != nil {
		return nil, errors.Wrapf(err, "create %s reader", typ)
	}
	logging.ClientCreated("reader", typ)
	return client, nil
}

// CreateWriter builds the writer named by cfg's type.
func (r *Registry) CreateWriter(cfg config.ClientConfig) (WriteClient, error) {
	typ := cfg.Type()
	if typ == "" {
		return nil, errors.NewValidation("writer.type", "is required")
	}

	r.mu.RLock()
	f, ok := r.writers[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFound("writer type", typ)
	}

	client, err := f(cfg.Options())
	if err != nil {
		return nil, errors.Wrapf(err, "create %s writer", typ)
	}
	logging.ClientCreated("writer", typ)
	return client, nil
}

// ReaderTypes returns the registered reader type names, sorted.
func (r *Registry) ReaderTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.readers)
}

// WriterTypes returns the registered writer type names, sorted.
func (r *Registry) WriterTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.writers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RequireOption returns opts[key] or a ValidationError when it is empty.
func RequireOption(opts map[string]string, key string) (string, error) {
	v := opts[key]
	if v == "" {
		return "", errors.NewValidation(key, "is required")
	}
	return v, nil
}

// RequirePath is RequireOption for file paths, additionally rejecting
// paths that fail validation.ValidatePath.
func RequirePath(opts map[string]string, key string) (string, error) {
	path, err := RequireOption(opts, key)
	if err != nil {
		return "", err
	}
	if err := validation.ValidatePath(path); err != nil {
		return "", &errors.ValidationError{Field: key, Value: path, Message: err.Error()}
	}
	return path, nil
}
