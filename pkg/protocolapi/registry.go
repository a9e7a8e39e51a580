package protocolapi

// Registry collects protocol records while a catalog is assembled.
type Registry interface {
	RegisterProtocol(protocol Protocol)
}

// Contributor supplies protocol records to the catalog at startup.
type Contributor interface {
	Name() string
	Version() string
	Register(registry Registry) error
}
