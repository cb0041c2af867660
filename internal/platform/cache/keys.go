package cache

import (
	"strconv"
)

// Keys derives the cache keys of one entity kind. The layout is shared with
// existing deployments and must not change:
//
//	List<Kind>_page_<page>
//	Info<Kind>_<id>
//	ListParent<Kind>
//
// A non-default page size appends _limit_<n> so pages of different sizes do
// not overwrite each other.
type Keys struct {
	prefix       string
	kind         string
	defaultLimit int
}

// NewKeys creates the key set for kind. A non-empty namespace is prepended as "<namespace>:".
func NewKeys(namespace, kind string, defaultLimit int) Keys {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return Keys{prefix: prefix, kind: kind, defaultLimit: defaultLimit}
}

// Kind returns the entity kind the keys belong to.
func (k Keys) Kind() string { return k.kind }

func (k Keys) List(page, limit int) string {
	key := k.prefix + "List" + k.kind + "_page_" + strconv.Itoa(page)
	if limit != k.defaultLimit {
		key += "_limit_" + strconv.Itoa(limit)
	}
	return key
}

func (k Keys) Info(id uint) string {
	return k.prefix + "Info" + k.kind + "_" + strconv.FormatUint(uint64(id), 10)
}

func (k Keys) ListParent() string {
	return k.prefix + "ListParent" + k.kind
}
