package ports

import "errors"

// ErrCorruptValue marks a stored value that exists but does not decode into the
// requested type. Fields that did decode are already set on out.
var ErrCorruptValue = errors.New("stored value does not decode")

// DataStorePort is the host key/value persistence: one JSON document per (namespace, key).
type DataStorePort interface {
	// Load decodes the stored document into out. found is false when nothing is stored;
	// a value that exists but fails to decode returns found and ErrCorruptValue.
	Load(namespace, key string, out any) (found bool, err error)
	Save(namespace, key string, val any) error
	Close() error
}
