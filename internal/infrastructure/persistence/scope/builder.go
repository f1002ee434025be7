package scope

import (
	"errors"

	"github.com/benefits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Query is the composable escape hatch for reads too complex for the filter
// form: joins, grouping, aggregates. It is created by Store.Query with the
// caller's scope predicate already applied to the base table, and its public
// surface only supports AND-composition — there is deliberately no Or, no
// clause replacement and no access to the underlying *gorm.DB, so the seeded
// predicate cannot be widened or removed.
type Query[T any] struct {
	db *gorm.DB
}

// Where adds an AND condition
func (q *Query[T]) Where(condition string, args ...interface{}) *Query[T] {
	q.db = q.db.Where(condition, args...)
	return q
}

// Joins adds a join clause; the scope predicate stays qualified with the base
// table, so joined rows cannot shadow it
func (q *Query[T]) Joins(join string, args ...interface{}) *Query[T] {
	q.db = q.db.Joins(join, args...)
	return q
}

// Select restricts the selected columns or introduces aggregate expressions
func (q *Query[T]) Select(columns string, args ...interface{}) *Query[T] {
	q.db = q.db.Select(columns, args...)
	return q
}

// Group adds a GROUP BY clause
func (q *Query[T]) Group(columns string) *Query[T] {
	q.db = q.db.Group(columns)
	return q
}

// Having adds a HAVING condition
func (q *Query[T]) Having(condition string, args ...interface{}) *Query[T] {
	q.db = q.db.Having(condition, args...)
	return q
}

// Order adds an ORDER BY clause. The column string is expected to come from
// an allow-list, not raw request input.
func (q *Query[T]) Order(order string) *Query[T] {
	q.db = q.db.Order(order)
	return q
}

// Limit caps the number of returned rows
func (q *Query[T]) Limit(limit int) *Query[T] {
	q.db = q.db.Limit(limit)
	return q
}

// Offset skips rows for pagination
func (q *Query[T]) Offset(offset int) *Query[T] {
	q.db = q.db.Offset(offset)
	return q
}

// Find executes the query into a slice of the entity type
func (q *Query[T]) Find() ([]T, error) {
	var entities []T
	if err := q.db.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// First executes the query and returns the first row. An empty result is
// reported as shared.ErrNotFound, the same way Store.FindByID reports it.
func (q *Query[T]) First() (*T, error) {
	var entity T
	if err := q.db.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Count executes the query as a COUNT
func (q *Query[T]) Count() (int64, error) {
	var count int64
	if err := q.db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Scan executes the query into an arbitrary destination, used for aggregate
// projections that do not map onto the entity type
func (q *Query[T]) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

// Pluck extracts a single column into dest
func (q *Query[T]) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}
