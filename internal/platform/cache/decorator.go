package cache

import (
	"context"

	"go.uber.org/zap"

	"admin_backend/internal/platform/store"
)

// Observer is notified of cache outcomes. *metrics.Collector implements it.
type Observer interface {
	CacheHit(kind string)
	CacheMiss(kind string)
	CacheError(kind, op string)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string) {}
func (nopObserver) CacheMiss(string) {}
func (nopObserver) CacheError(string, string) {}

// Options configures a caching repository. Zero values select defaults.
type Options struct {
	Namespace    string
	DefaultLimit int
	TTL          TTLFunc
	Logger       *zap.Logger
	Observer     Observer
}

// decorator holds what the caching repositories share. A nil store disables
// caching and every call goes straight to the inner repository.
type decorator struct {
	store    Store
	keys     Keys
	ttl      TTLFunc
	logger   *zap.Logger
	observer Observer
}

func newDecorator(s Store, kind string, opts Options) decorator {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = store.DefaultLimit
	}
	if opts.TTL == nil {
		opts.TTL = RandomTTL(DefaultTTLMin, DefaultTTLMax)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return decorator{
		store:    s,
		keys:     NewKeys(opts.Namespace, kind, opts.DefaultLimit),
		ttl:      opts.TTL,
		logger:   opts.Logger,
		observer: opts.Observer,
	}
}

func (d *decorator) enabled() bool { return d.store != nil }

// lookup returns the cached bytes under key, or nil. A backend failure counts as a miss.
func (d *decorator) lookup(ctx context.Context, key string) []byte {
	ok, err := d.store.Exists(ctx, key)
	if err != nil {
		d.fail("exists", key, err)
		return nil
	}
	if !ok {
		return nil
	}
	raw, err := d.store.Get(ctx, key)
	if err != nil {
		d.fail("get", key, err)
		return nil
	}
	return raw
}

func (d *decorator) evict(ctx context.Context, key string) {
	if err := d.store.Del(ctx, key); err != nil {
		d.fail("del", key, err)
	}
}

func (d *decorator) fail(op, key string, err error) {
	d.logger.Warn("cache backend call failed",
		zap.String("kind", d.keys.Kind()),
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
	d.observer.CacheError(d.keys.Kind(), op)
}

// put encodes snap and stores it under key with a fresh TTL.
func put[S any](ctx context.Context, d *decorator, key string, snap S) {
	raw, err := encodeSnapshot(d.keys.Kind(), snap)
	if err != nil {
		d.fail("encode", key, err)
		return
	}
	if err := d.store.SetEx(ctx, key, raw, d.ttl()); err != nil {
		d.fail("setex", key, err)
	}
}

// readThrough serves key from the cache or, on a miss, from load. The result
// of load is cached only when load succeeds; its error is returned unchanged.
func readThrough[S, V any](ctx context.Context, d *decorator, key string, load func() (V, error), toSnap func(V) S, fromSnap func(S) V) (V, error) {
	if !d.enabled() {
		return load()
	}

	if raw := d.lookup(ctx, key); raw != nil {
		snap, err := decodeSnapshot[S](d.keys.Kind(), raw)
		if err == nil {
			d.observer.CacheHit(d.keys.Kind())
			return fromSnap(snap), nil
		}
		d.logger.Warn("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		d.evict(ctx, key)
	}
	d.observer.CacheMiss(d.keys.Kind())

	v, err := load()
	if err != nil {
		return v, err
	}
	put(ctx, d, key, toSnap(v))
	return v, nil
}
