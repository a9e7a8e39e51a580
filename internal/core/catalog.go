package core

import (
	"fmt"

	"protocolkb/pkg/protocolapi"
)

// Catalog is the validated, immutable set of protocol records. It is built
// once at startup and only read afterwards, so it is safe for concurrent use
// without locking. Every accessor returns freshly cloned values.
type Catalog struct {
	entries []catalogEntry
	byID    map[string]int
}

type catalogEntry struct {
	protocol  protocolapi.Protocol
	ailments  map[string]struct{}
	regions   map[string]struct{}
	excludes  map[string]struct{}
	worldwide bool
}

// NewCatalog validates and indexes the supplied protocols. Any invariant
// violation yields a *CatalogError describing all of them; a catalog is never
// returned partially built.
func NewCatalog(protocols []protocolapi.Protocol) (*Catalog, error) {
	var problems []ValidationError
	seen := make(map[string]int, len(protocols))
	for i, p := range protocols {
		problems = append(problems, validateProtocol(p)...)
		if first, dup := seen[p.ID]; dup {
			problems = append(problems, ValidationError{
				ProtocolID: p.ID,
				Field:      "id",
				Message:    fmt.Sprintf("duplicate of record %d", first),
			})
			continue
		}
		seen[p.ID] = i
	}
	if len(problems) > 0 {
		return nil, &CatalogError{Violations: problems}
	}

	c := &Catalog{
		entries: make([]catalogEntry, len(protocols)),
		byID:    seen,
	}
	for i, p := range protocols {
		c.entries[i] = newCatalogEntry(p.Clone())
	}
	return c, nil
}

func newCatalogEntry(p protocolapi.Protocol) catalogEntry {
	entry := catalogEntry{
		protocol: p,
		ailments: tagSet(p.AilmentTargets),
		regions:  tagSet(p.RegionalAvailability),
		excludes: tagSet(p.Contraindications),
	}
	_, entry.worldwide = entry.regions[protocolapi.RegionWorldwide]
	return entry
}

func tagSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[protocolapi.NormalizeTag(v)] = struct{}{}
	}
	return set
}

// CatalogRegistry collects protocols from contributors before validation.
type CatalogRegistry struct {
	protocols []protocolapi.Protocol
}

// NewCatalogRegistry constructs an empty registry.
func NewCatalogRegistry() *CatalogRegistry {
	return &CatalogRegistry{}
}

// RegisterProtocol appends a protocol record.
func (r *CatalogRegistry) RegisterProtocol(p protocolapi.Protocol) {
	r.protocols = append(r.protocols, p.Clone())
}

// Protocols returns the registered records in registration order.
func (r *CatalogRegistry) Protocols() []protocolapi.Protocol {
	out := make([]protocolapi.Protocol, len(r.protocols))
	for i, p := range r.protocols {
		out[i] = p.Clone()
	}
	return out
}

// BuildCatalog runs every contributor against a shared registry and validates
// the combined result. Catalog order follows contributor order, then each
// contributor's registration order.
func BuildCatalog(contributors ...protocolapi.Contributor) (*Catalog, error) {
	registry := NewCatalogRegistry()
	for _, contributor := range contributors {
		if contributor == nil {
			return nil, fmt.Errorf("protocol contributor cannot be nil")
		}
		if err := contributor.Register(registry); err != nil {
			return nil, fmt.Errorf("register %s@%s: %w", contributor.Name(), contributor.Version(), err)
		}
	}
	return NewCatalog(registry.Protocols())
}

// Get returns the protocol with the exact id. Unknown and empty ids report
// false.
func (c *Catalog) Get(id string) (protocolapi.Protocol, bool) {
	if c == nil || id == "" {
		return protocolapi.Protocol{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return protocolapi.Protocol{}, false
	}
	return c.entries[idx].protocol.Clone(), true
}

// All returns every protocol in catalog order.
func (c *Catalog) All() []protocolapi.Protocol {
	return c.collect(func(catalogEntry) bool { return true })
}

// Len reports the number of protocols.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *Catalog) collect(keep func(catalogEntry) bool) []protocolapi.Protocol {
	out := []protocolapi.Protocol{}
	if c == nil {
		return out
	}
	for _, entry := range c.entries {
		if keep(entry) {
			out = append(out, entry.protocol.Clone())
		}
	}
	return out
}
