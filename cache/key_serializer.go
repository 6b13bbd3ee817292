package cache

import (
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter between the cache name and the item id.
const KeySeparator = "::"

// DefaultCacheName is the logical cache all item entries live in.
const DefaultCacheName = "product"

// KeySerializer builds cache keys for item ids.
// It is responsible for producing stable keys across calls and processes.
type KeySerializer interface {
	SerializeKey(id int64) string
}

// prefixKeySerializer renders keys as <prefix><cache name>::<id>, e.g. products_product::42.
type prefixKeySerializer struct {
	namespace string
}

// NewKeySerializer creates a serializer for the given prefix and cache name.
// An empty name falls back to DefaultCacheName.
func NewKeySerializer(prefix, name string) KeySerializer {
	if name == "" {
		name = DefaultCacheName
	}
	return &prefixKeySerializer{namespace: prefix + name + KeySeparator}
}

// NewDefaultKeySerializer creates a serializer using the default prefix and cache name.
func NewDefaultKeySerializer() KeySerializer {
	return NewKeySerializer(DefaultKeyPrefix, DefaultCacheName)
}

func (s *prefixKeySerializer) SerializeKey(id int64) string {
	return s.namespace + strconv.FormatInt(id, 10)
}

// ParseKey extracts the item id from a key produced by a serializer with the same
// namespace. It reports false for foreign or malformed keys.
func ParseKey(key string) (int64, bool) {
	idx := strings.LastIndex(key, KeySeparator)
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(key[idx+len(KeySeparator):], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
