// SPDX-License-Identifier: MPL-2.0

// Package registry implements a catalog of parameterized Terraform module
// templates: typed variable schemas, output declarations, placeholder
// substitution, heuristic structural validation, and plan-style previews of
// rendered templates.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	// Store is the persistence collaborator behind a Registry. Implementations
	// must enforce module-name uniqueness with a storage-level constraint
	// (mapping violations to ErrNameExists) and perform IncrementDownloads as
	// a single atomic update, so concurrent renders never lose counts.
	Store interface {
		// Insert persists a freshly registered module.
		Insert(ctx context.Context, m *Module) error
		// Get resolves a reference (module ID or unique name) to a module.
		Get(ctx context.Context, ref string) (*Module, error)
		// List returns modules matching the optional provider/resource-type
		// filters, ordered by descending download count then ascending name.
		List(ctx context.Context, provider, resourceType string) ([]*Module, error)
		// Search returns modules whose name, description, provider, resource
		// type, or tags contain the query (case-insensitive), ordered by
		// descending download count.
		Search(ctx context.Context, query string) ([]*Module, error)
		// Delete removes a module by ID, reporting whether a record existed.
		Delete(ctx context.Context, id string) (bool, error)
		// IncrementDownloads atomically adds one to a module's counter.
		IncrementDownloads(ctx context.Context, id string) error
		// SetVersion updates a module's version string.
		SetVersion(ctx context.Context, id, version string) error
		// Stats aggregates catalog-wide counters.
		Stats(ctx context.Context) (*Stats, error)
	}

	// Registry is the public surface of the module catalog. All operations
	// are short-lived transactional units of work against the Store; the
	// Registry itself holds no mutable state and is safe for concurrent use.
	Registry struct {
		store Store
		now   func() time.Time
	}

	// Option customizes Registry construction.
	Option func(*Registry)

	// RegisterRequest carries everything needed to register a module.
	// Version defaults to "1.0.0" when empty.
	RegisterRequest struct {
		Name         string
		Provider     string
		ResourceType string
		Description  string
		Version      string
		HCLTemplate  string
		Variables    []Variable
		Outputs      []Output
		Examples     []Example
		Tags         []string
	}

	// ProviderCount is one row of the per-provider module breakdown.
	ProviderCount struct {
		Provider string `json:"provider"`
		Count    int    `json:"count"`
	}

	// DownloadEntry is one row of the most-downloaded ranking.
	DownloadEntry struct {
		Name      string `json:"name"`
		Provider  string `json:"provider"`
		Downloads int64  `json:"downloads"`
	}

	// Stats summarizes the catalog: total module count, per-provider counts
	// (most populous first), and the top five modules by downloads.
	Stats struct {
		TotalModules   int             `json:"total_modules"`
		ByProvider     []ProviderCount `json:"by_provider"`
		MostDownloaded []DownloadEntry `json:"most_downloaded"`
	}
)

// DefaultVersion is assigned to registrations that omit a version.
const DefaultVersion = "1.0.0"

// New builds a Registry on top of the given store.
func New(store Store, opts ...Option) *Registry {
	r := &Registry{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithClock overrides the registry's time source. Tests use it to pin
// creation and plan timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// Register validates and persists a new module. The provider must belong to
// the fixed enumeration and the template must pass structural validation;
// either failure rejects the registration before anything is persisted.
// A fresh ID is minted and the creation timestamp set exactly once here.
func (r *Registry) Register(ctx context.Context, req RegisterRequest) (*Module, error) {
	if !Providers[req.Provider] {
		return nil, &InvalidProviderError{Provider: req.Provider}
	}
	if vr := Validate(req.HCLTemplate); !vr.Valid {
		return nil, &InvalidTemplateError{Result: vr}
	}

	version := req.Version
	if version == "" {
		version = DefaultVersion
	}

	m := &Module{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Provider:     req.Provider,
		ResourceType: req.ResourceType,
		Version:      version,
		Description:  req.Description,
		HCLTemplate:  req.HCLTemplate,
		Variables:    req.Variables,
		Outputs:      req.Outputs,
		Examples:     req.Examples,
		Tags:         req.Tags,
		CreatedAt:    r.now().UTC(),
	}
	if err := r.store.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("register module %q: %w", req.Name, err)
	}
	return m, nil
}

// Get resolves a module by ID or unique name.
func (r *Registry) Get(ctx context.Context, ref string) (*Module, error) {
	return r.store.Get(ctx, ref)
}

// List returns the catalog, optionally filtered by provider and resource
// type, most downloaded first and name as tiebreaker.
func (r *Registry) List(ctx context.Context, provider, resourceType string) ([]*Module, error) {
	return r.store.List(ctx, provider, resourceType)
}

// Search finds modules whose name, description, provider, resource type, or
// tags contain the query substring, case-insensitively.
func (r *Registry) Search(ctx context.Context, query string) ([]*Module, error) {
	return r.store.Search(ctx, query)
}

// Delete removes a module by ID or name. A miss is not an error: the boolean
// result reports whether a record was removed.
func (r *Registry) Delete(ctx context.Context, ref string) (bool, error) {
	m, err := r.store.Get(ctx, ref)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return r.store.Delete(ctx, m.ID)
}

// Stats aggregates catalog-wide counters.
func (r *Registry) Stats(ctx context.Context) (*Stats, error) {
	return r.store.Stats(ctx)
}

// BumpVersion increments one component of a module's semantic version,
// zeroing everything less significant, and persists the result. Part
// defaults to patch when empty.
func (r *Registry) BumpVersion(ctx context.Context, ref string, part BumpPart) (string, error) {
	m, err := r.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	next, err := bumpVersion(m.Version, part)
	if err != nil {
		return "", err
	}
	if err := r.store.SetVersion(ctx, m.ID, next); err != nil {
		return "", fmt.Errorf("bump version of %q: %w", m.Name, err)
	}
	return next, nil
}
