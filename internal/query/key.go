package query

import (
	"sort"
	"strings"
)

// Key identifies one cached list: the resource plus every active filter
// value. Changing any filter produces a different key, which forces a fresh
// fetch instead of reusing another filter's data.
type Key struct {
	Resource string
	Filters  map[string]string
}

func NewKey(resource string, filters map[string]string) Key {
	return Key{Resource: resource, Filters: filters}
}

// String renders the key deterministically: filters are sorted by name and
// empty values are dropped, so {subject:"", chapter:"x"} and {chapter:"x"}
// collide as they should.
func (k Key) String() string {
	if len(k.Filters) == 0 {
		return k.Resource
	}

	names := make([]string, 0, len(k.Filters))
	for name, val := range k.Filters {
		if val != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Resource)
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(k.Filters[name])
	}
	return b.String()
}
