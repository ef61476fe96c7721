// Package schema maintains a process-scoped snapshot of database structure
// for use as generation context. The snapshot is loaded once and reused; it
// refreshes only on explicit Reload or Invalidate, never implicitly.
package schema

import (
	"context"
	"sync"
	"time"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// now is swapped in tests.
var now = time.Now

// Introspector is the slice of the execution collaborator the analyzer needs.
type Introspector interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) ([]*core.ColumnInfo, error)
}

// Analyzer loads and caches the schema snapshot. Safe for concurrent use.
type Analyzer struct {
	db       Introspector
	database string
	logger   core.Logger

	mu     sync.RWMutex
	cached *core.SchemaContext
}

// NewAnalyzer creates an analyzer over the given introspector.
func NewAnalyzer(db Introspector, database string, logger core.Logger) *Analyzer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Analyzer{db: db, database: database, logger: logger}
}

// SchemaContext returns the cached snapshot, loading it on first use.
func (a *Analyzer) SchemaContext(ctx context.Context) (*core.SchemaContext, error) {
	a.mu.RLock()
	cached := a.cached
	a.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return a.Reload(ctx)
}

// Reload discards the cached snapshot and loads a fresh one.
func (a *Analyzer) Reload(ctx context.Context) (*core.SchemaContext, error) {
	snapshot, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.cached = snapshot
	a.mu.Unlock()

	a.logger.Info("schema loaded", "database", a.database, "tables", len(snapshot.Tables))
	return snapshot, nil
}

// Invalidate drops the cached snapshot. The next SchemaContext call reloads.
func (a *Analyzer) Invalidate() {
	a.mu.Lock()
	a.cached = nil
	a.mu.Unlock()
}

// IsLoaded reports whether a snapshot is currently cached.
func (a *Analyzer) IsLoaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cached != nil
}

func (a *Analyzer) load(ctx context.Context) (*core.SchemaContext, error) {
	tables, err := a.db.ListTables(ctx)
	if err != nil {
		return nil, core.ErrSchemaNotLoaded.WithCause(err)
	}

	snapshot := &core.SchemaContext{
		Database: a.database,
		Tables:   make([]*core.TableSchema, 0, len(tables)),
		LoadedAt: now(),
	}

	for _, table := range tables {
		columns, err := a.db.DescribeTable(ctx, table)
		if err != nil {
			// A single unreadable table does not poison the snapshot.
			a.logger.Warn("skipping table", "table", table, "error", err)
			continue
		}
		snapshot.Tables = append(snapshot.Tables, &core.TableSchema{
			Name:    table,
			Columns: columns,
		})
	}

	return snapshot, nil
}
