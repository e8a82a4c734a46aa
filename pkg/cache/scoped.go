package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The redis backend
// uses it so cache entries live in their own namespace next to the hashes
// redis datasets are read from.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner (the [DefaultKeyer] when nil) under prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k ScopedKeyer) SeriesKey(dataset string, year int) string {
	return k.prefix + k.inner.SeriesKey(dataset, year)
}
