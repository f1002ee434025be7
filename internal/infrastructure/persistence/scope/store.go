package scope

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/audit"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MissingContextPolicy decides what a store does when an operation arrives
// without an installed scope context.
type MissingContextPolicy int

const (
	// AllowUnscoped executes the operation without a scope predicate. This is
	// the source design's availability-over-safety default: migrations, jobs
	// and health checks keep working outside a request.
	AllowUnscoped MissingContextPolicy = iota
	// RejectOperation fails the operation with ErrMissingContext. Use it for
	// entity types where silent enforcement loss is unacceptable.
	RejectOperation
)

// Store is a generic entity store with transparent scope enforcement layered
// underneath. It presents the same contract as a conventional GORM-backed
// repository; call sites neither supply nor can remove the scope predicate.
type Store[T any] struct {
	db           *gorm.DB
	table        string
	policy       MissingContextPolicy
	recorder     audit.Recorder
	sortFields   map[string]bool
	queryFields  map[string]bool
	searchFields []string
}

// Option configures a Store
type Option func(*storeConfig)

type storeConfig struct {
	policy       MissingContextPolicy
	recorder     audit.Recorder
	sortFields   map[string]bool
	queryFields  map[string]bool
	searchFields []string
}

// WithMissingContextPolicy overrides the missing-context behavior for this
// entity type
func WithMissingContextPolicy(policy MissingContextPolicy) Option {
	return func(cfg *storeConfig) {
		cfg.policy = policy
	}
}

// WithAuditRecorder sets the recorder notified on every escape-hatch call
func WithAuditRecorder(recorder audit.Recorder) Option {
	return func(cfg *storeConfig) {
		cfg.recorder = recorder
	}
}

// WithSortFields sets the allow-list of sortable columns
func WithSortFields(fields map[string]bool) Option {
	return func(cfg *storeConfig) {
		cfg.sortFields = fields
	}
}

// WithQueryFields sets the allow-list of columns accepted from Filter.Filters
func WithQueryFields(fields map[string]bool) Option {
	return func(cfg *storeConfig) {
		cfg.queryFields = fields
	}
}

// WithSearchFields sets the columns a Filter.Search term matches against,
// combined as a case-insensitive LIKE group inside the scope predicate
func WithSearchFields(fields []string) Option {
	return func(cfg *storeConfig) {
		cfg.searchFields = fields
	}
}

// NewStore creates a scoped store for entity type T. T should carry a
// TableName method (all scope-bearing aggregates do); it is used to qualify
// the scope predicate so joins cannot shadow it.
func NewStore[T any](db *gorm.DB, opts ...Option) *Store[T] {
	cfg := &storeConfig{
		policy:      AllowUnscoped,
		recorder:    audit.NopRecorder{},
		sortFields:  defaultSortFields,
		queryFields: map[string]bool{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var table string
	if named, ok := any(new(T)).(interface{ TableName() string }); ok {
		table = named.TableName()
	}

	return &Store[T]{
		db:           db,
		table:        table,
		policy:       cfg.policy,
		recorder:     cfg.recorder,
		sortFields:   cfg.sortFields,
		queryFields:  cfg.queryFields,
		searchFields: cfg.searchFields,
	}
}

// defaultSortFields covers the base aggregate columns
var defaultSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// column qualifies a scope column with the table name when known, so the
// predicate survives joins added through the query builder
func (s *Store[T]) column(name string) string {
	if s.table == "" {
		return name
	}
	return s.table + "." + name
}

// scoped returns a query with the caller's scope predicate applied. With no
// installed context the behavior follows the store's MissingContextPolicy.
func (s *Store[T]) scoped(ctx context.Context) (*gorm.DB, error) {
	db := s.db.WithContext(ctx).Model(new(T))

	sc, ok := FromContext(ctx)
	if !ok {
		if s.policy == RejectOperation {
			return nil, ErrMissingContext
		}
		return db, nil
	}

	if predicate, restricted := ReadPredicate(sc); restricted {
		db = db.Where(s.column(predicate.Column)+" = ?", predicate.Value)
	}
	return db, nil
}

// FindByID finds one record by id within the caller's scope. A record outside
// the scope is reported as shared.ErrNotFound, indistinguishable from a
// nonexistent id.
func (s *Store[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	query, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := query.Where(s.column("id")+" = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all records within the caller's scope matching the filter.
// Caller filters are AND-merged with the scope predicate: they narrow, never
// widen.
func (s *Store[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	query, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}

	var entities []T
	if err := s.applyFilter(query, filter).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts records within the caller's scope matching the filter
func (s *Store[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query, err := s.scoped(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create persists a new record, stamping ownership metadata from the
// installed context. Fields the caller set explicitly are preserved.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	sc, ok := FromContext(ctx)
	if !ok && s.policy == RejectOperation {
		return ErrMissingContext
	}
	if ok {
		if scoped, isScoped := any(entity).(Scoped); isScoped {
			Stamp(sc, scoped)
		}
	}
	return s.db.WithContext(ctx).Create(entity).Error
}

// Update saves changes to an existing record, resolved with the caller's
// scope first: mutating a record outside the scope fails with
// shared.ErrNotFound rather than leaking its existence. Ownership metadata
// is carried over from the stored record; updates never re-stamp.
func (s *Store[T]) Update(ctx context.Context, entity *T) error {
	identified, ok := any(entity).(shared.Entity)
	if !ok {
		return s.db.WithContext(ctx).Save(entity).Error
	}

	existing, err := s.FindByID(ctx, identified.GetID())
	if err != nil {
		return err
	}

	if stored, isScoped := any(existing).(Scoped); isScoped {
		if updated, alsoScoped := any(entity).(Scoped); alsoScoped {
			copyScopeFields(stored, updated)
		}
	}

	return s.db.WithContext(ctx).Save(entity).Error
}

// Delete removes a record by id within the caller's scope. Out-of-scope ids
// behave exactly like missing ids.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Query returns a builder pre-seeded with the caller's scope predicate for
// operations too complex for the filter form (joins, aggregates). The seeded
// predicate cannot be removed through the builder's surface.
func (s *Store[T]) Query(ctx context.Context) (*Query[T], error) {
	query, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	return &Query[T]{db: query}, nil
}

// FindByIDUnscoped finds a record by id ignoring any installed scope context.
// Escape hatch: audited, never invoked implicitly.
func (s *Store[T]) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*T, error) {
	s.recordBypass(ctx, "find_by_id_unscoped")

	var entity T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllUnscoped finds all records matching the filter regardless of any
// installed scope context. Escape hatch: audited, never invoked implicitly.
func (s *Store[T]) FindAllUnscoped(ctx context.Context, filter shared.Filter) ([]T, error) {
	s.recordBypass(ctx, "find_all_unscoped")

	var entities []T
	query := s.db.WithContext(ctx).Model(new(T))
	if err := s.applyFilter(query, filter).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountUnscoped counts all records matching the filter regardless of any
// installed scope context. Escape hatch: audited.
func (s *Store[T]) CountUnscoped(ctx context.Context, filter shared.Filter) (int64, error) {
	s.recordBypass(ctx, "count_unscoped")

	var count int64
	query := s.db.WithContext(ctx).Model(new(T))
	if err := s.applyFilterWithoutPagination(query, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// recordBypass emits the audit entry for an escape-hatch call
func (s *Store[T]) recordBypass(ctx context.Context, action string) {
	entry := audit.Entry{
		Action: action,
		Table:  s.table,
		Reason: BypassReason(ctx),
		At:     time.Now(),
	}
	if sc, ok := FromContext(ctx); ok {
		entry.CallerID = sc.CallerID
	}
	s.recorder.Record(ctx, entry)
}

// applyFilter applies pagination, ordering and field filters to the query
func (s *Store[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = s.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" && s.sortFields[strings.TrimSpace(filter.OrderBy)] {
		orderBy = strings.TrimSpace(filter.OrderBy)
	}
	orderDir := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc") {
		orderDir = "ASC"
	}

	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies the caller's field filters and search
// term. Column names come from per-store allow-lists, never from the raw
// request.
func (s *Store[T]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		if s.queryFields[key] {
			query = query.Where(s.column(key)+" = ?", value)
		}
	}

	if search := strings.TrimSpace(filter.Search); search != "" && len(s.searchFields) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		match := s.db.Session(&gorm.Session{NewDB: true})
		for i, field := range s.searchFields {
			condition := "LOWER(" + s.column(field) + ") LIKE ?"
			if i == 0 {
				match = match.Where(condition, pattern)
			} else {
				match = match.Or(condition, pattern)
			}
		}
		// Grouped, so the OR chain stays AND-merged with the scope predicate
		query = query.Where(match)
	}

	return query
}

// copyScopeFields carries ownership metadata from src onto dst, overwriting
// whatever the caller put there: stamped fields are immutable after creation
func copyScopeFields(src, dst Scoped) {
	if owner := src.ScopeOwnerID(); owner != nil {
		dst.SetScopeOwner(*owner)
	}
	if unit := src.ScopeUnitID(); unit != nil {
		dst.SetScopeUnit(*unit)
	}
}
