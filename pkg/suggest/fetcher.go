package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/bastiangx/citycomplete/internal/metrics"
	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Fetcher resolves queries: cached remote dataset first, then the remote source
// under a timeout, then the local fallback list. A Fetcher is safe for
// concurrent use and is meant to be shared by every field hitting the same source.
type Fetcher struct {
	opts     Options
	source   Source
	cache    *Cache
	fallback *dictionary.Index
}

// NewFetcher wires a fetcher. source may be nil, in which case (or when
// UseRemoteSource is off) every lookup is answered from fallback. cache may be
// nil to get a private cache with opts.CacheTTL.
func NewFetcher(opts Options, source Source, cache *Cache, fallback []dictionary.Entry) *Fetcher {
	opts = opts.withDefaults()
	if cache == nil {
		cache = NewCache(opts.CacheTTL)
	}
	if fallback == nil {
		fallback = dictionary.FromNames(dictionary.Cities)
	}
	return &Fetcher{
		opts:     opts,
		source:   source,
		cache:    cache,
		fallback: dictionary.NewIndex(fallback),
	}
}

// Cache returns the cache backing remote lookups.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// Options returns the effective options.
func (f *Fetcher) Options() Options {
	return f.opts
}

func (f *Fetcher) remoteEnabled() bool {
	return f.opts.UseRemoteSource && f.source != nil
}

// Fetch returns at most MaxResults candidates for query. Data source failures
// never surface: they are logged and answered from the fallback list. The only
// error is ctx itself being done, which means the caller no longer wants the
// answer.
func (f *Fetcher) Fetch(ctx context.Context, query string) (CandidateList, error) {
	query = strings.TrimSpace(query)

	if f.remoteEnabled() {
		if list, ok := f.cache.Get(query, f.opts.MaxResults); ok {
			metrics.Lookups.WithLabelValues(OriginCache.String()).Inc()
			return list, nil
		}

		list, err := f.fetchRemote(ctx, query)
		if err == nil {
			metrics.Lookups.WithLabelValues(OriginRemote.String()).Inc()
			return list, nil
		}
		if ctx.Err() != nil {
			return CandidateList{}, ctx.Err()
		}

		kind := Classify(err)
		metrics.RemoteFailures.WithLabelValues(kind.String()).Inc()
		log.Warnf("Remote lookup for %q failed (%s): %v. Using local data", query, kind, err)
	}

	metrics.Lookups.WithLabelValues(OriginFallback.String()).Inc()
	return f.fromFallback(query), nil
}

func (f *Fetcher) fromFallback(query string) CandidateList {
	return CandidateList{
		Query:     query,
		Items:     f.fallback.Search(query, f.opts.MaxResults),
		FetchedAt: f.cache.Now(),
		Source:    OriginFallback,
	}
}

type searchResult struct {
	payload []byte
	err     error
}

// fetchRemote calls the source with a bounded timeout. The deadline holds even
// for sources that ignore their context.
func (f *Fetcher) fetchRemote(ctx context.Context, query string) (CandidateList, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan searchResult, 1)
	go func() {
		payload, err := f.source.Search(reqCtx, query)
		done <- searchResult{payload: payload, err: err}
	}()

	var res searchResult
	select {
	case res = <-done:
	case <-reqCtx.Done():
		res.err = reqCtx.Err()
	}
	metrics.RemoteLatency.Observe(time.Since(start).Seconds())
	if res.err != nil {
		return CandidateList{}, res.err
	}

	entries, err := DecodeRecords(res.payload)
	if err != nil {
		return CandidateList{}, err
	}

	// Remote answers are filtered like cache hits.
	index := dictionary.NewIndex(entries)
	now := f.cache.Now()
	f.cache.putIndex(index, now)
	log.Debugf("Cached %d remote entries for %q", len(entries), query)

	return CandidateList{
		Query:     query,
		Items:     index.Search(query, f.opts.MaxResults),
		FetchedAt: now,
		Source:    OriginRemote,
	}, nil
}
