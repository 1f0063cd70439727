package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/verte-zerg/chartab/internal/model"
)

// Origin tells where loaded records came from.
type Origin string

// Possible origins of a loaded dataset.
const (
	OriginRemote   Origin = "remote"
	OriginSnapshot Origin = "snapshot"
	OriginFallback Origin = "fallback"
)

// Result is the outcome of a load. Warning is set whenever the configured
// source could not be used.
type Result struct {
	Records   []string
	Origin    Origin
	Source    string
	Warning   string
	FetchedAt time.Time
}

// SnapshotStore keeps the last good download of a source.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, source string, records []string, fetchedAt time.Time) (int64, error)
	LatestSnapshot(ctx context.Context, source string) (model.Snapshot, bool, error)
}

// Loader memoizes a dataset load for the life of the process.
type Loader struct {
	source    Source
	snapshots SnapshotStore
	logger    *zap.Logger
	clock     func() time.Time
	sf        singleflight.Group

	mu     sync.Mutex
	loaded bool
	result Result
	// gen advances on Invalidate; a fetch started under an older gen is
	// returned to its callers but not cached.
	gen uint64
}

// NewLoader builds a Loader. snapshots and logger may be nil.
func NewLoader(source Source, snapshots SnapshotStore, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:    source,
		snapshots: snapshots,
		logger:    logger,
		clock:     time.Now,
	}
}

// Loaded reports whether a result is cached.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Invalidate drops the cached result so the next Load fetches again.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.loaded = false
	l.result = Result{}
	l.gen++
	l.mu.Unlock()
	l.sf.Forget("load")
}

// Load returns the cached dataset, fetching it on first use. It never
// fails: unreachable sources degrade to a snapshot or the built-in sample.
func (l *Loader) Load(ctx context.Context) Result {
	l.mu.Lock()
	if l.loaded {
		res := l.result
		l.mu.Unlock()
		return res
	}
	l.mu.Unlock()

	v, _, _ := l.sf.Do("load", func() (interface{}, error) {
		l.mu.Lock()
		if l.loaded {
			res := l.result
			l.mu.Unlock()
			return res, nil
		}
		gen := l.gen
		l.mu.Unlock()

		res := l.fetch(ctx)

		l.mu.Lock()
		if l.gen == gen {
			l.result = res
			l.loaded = true
		}
		l.mu.Unlock()
		return res, nil
	})
	return v.(Result)
}

func (l *Loader) fetch(ctx context.Context) Result {
	name := ""
	if l.source != nil {
		name = l.source.Name()
	}
	var err error
	if l.source == nil {
		err = fmt.Errorf("no data source configured")
	} else {
		var records []string
		records, err = l.source.Fetch(ctx)
		if err == nil {
			now := l.clock()
			l.logger.Info("dataset fetched", zap.String("source", name), zap.Int("rows", len(records)))
			l.saveSnapshot(ctx, name, records, now)
			return Result{Records: records, Origin: OriginRemote, Source: name, FetchedAt: now}
		}
	}
	l.logger.Warn("dataset fetch failed", zap.String("source", name), zap.Error(err))

	if snap, ok := l.latestSnapshot(ctx, name); ok {
		return Result{
			Records:   snap.Records,
			Origin:    OriginSnapshot,
			Source:    name,
			FetchedAt: snap.FetchedAt,
			Warning: fmt.Sprintf("Error fetching data: %v. Using saved copy from %s.",
				err, snap.FetchedAt.Local().Format("2006-01-02 15:04")),
		}
	}
	return Result{
		Records: Fallback(),
		Origin:  OriginFallback,
		Source:  name,
		Warning: fmt.Sprintf("Error fetching data: %v. Using built-in sample data.", err),
	}
}

func (l *Loader) saveSnapshot(ctx context.Context, name string, records []string, at time.Time) {
	if l.snapshots == nil || len(records) == 0 {
		return
	}
	if _, err := l.snapshots.SaveSnapshot(ctx, name, records, at); err != nil {
		l.logger.Warn("failed to save snapshot", zap.String("source", name), zap.Error(err))
	}
}

func (l *Loader) latestSnapshot(ctx context.Context, name string) (model.Snapshot, bool) {
	if l.snapshots == nil || name == "" {
		return model.Snapshot{}, false
	}
	// The fetch may have failed because ctx expired; the local lookup gets
	// its own short deadline.
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	snap, ok, err := l.snapshots.LatestSnapshot(lookupCtx, name)
	if err != nil {
		l.logger.Warn("failed to read snapshot", zap.String("source", name), zap.Error(err))
		return model.Snapshot{}, false
	}
	return snap, ok
}
