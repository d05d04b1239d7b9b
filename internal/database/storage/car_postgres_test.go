package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRecorder satisfies sqlx.ExtContext and records every executed
// statement with its arguments.
type execRecorder struct {
	queries []string
	args    [][]interface{}
}

func (r *execRecorder) DriverName() string         { return "postgres" }
func (r *execRecorder) Rebind(query string) string { return sqlx.Rebind(sqlx.DOLLAR, query) }
func (r *execRecorder) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return sqlx.BindNamed(sqlx.DOLLAR, query, arg)
}
func (r *execRecorder) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (r *execRecorder) QueryxContext(context.Context, string, ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (r *execRecorder) QueryRowxContext(context.Context, string, ...interface{}) *sqlx.Row {
	return nil
}
func (r *execRecorder) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	return driver.RowsAffected(1), nil
}

// The cover swap must demote siblings before promoting the new cover. A
// single UPDATE flipping both rows can visit the new cover first and violate
// the partial unique index while the statement is still running.
func TestApplyPhotoPlan_DemotesSiblingsBeforePromoting(t *testing.T) {
	carID := uuid.New()
	newCover := uuid.New()
	plan := &domain.PhotoPlan{
		Deletes: []uuid.UUID{uuid.New()},
		Upserts: []domain.CarPhoto{{
			ID:         newCover,
			CarID:      carID,
			ImageKey:   "cars/" + carID.String() + "/photos/2026/08/0123456789abcdef0123456789abcdef.jpg",
			UploadedAt: time.Now(),
		}},
		CoverID: newCover,
	}

	rec := &execRecorder{}
	require.NoError(t, applyPhotoPlan(context.Background(), rec, carID, plan))

	require.Len(t, rec.queries, 4)
	assert.Contains(t, rec.queries[0], "DELETE FROM car_photos")
	assert.Contains(t, rec.queries[1], "ON CONFLICT (id) DO UPDATE")

	demote, promote := rec.queries[2], rec.queries[3]
	assert.Contains(t, demote, "SET is_cover = FALSE")
	assert.Contains(t, demote, "id <> $2")
	assert.Equal(t, []interface{}{carID, newCover}, rec.args[2])

	assert.Contains(t, promote, "SET is_cover = TRUE")
	assert.Equal(t, []interface{}{newCover, carID}, rec.args[3])
}

func TestApplyPhotoPlan_EmptyPlanExecutesNothing(t *testing.T) {
	rec := &execRecorder{}
	require.NoError(t, applyPhotoPlan(context.Background(), rec, uuid.New(), &domain.PhotoPlan{}))
	assert.Empty(t, rec.queries)
}

func TestCarListClause_PublicFeedOnlyActive(t *testing.T) {
	clause, args := carListClause(domain.CarFilter{
		BodyType: domain.BodySUV,
		Page:     1,
		PerPage:  12,
	})

	assert.Contains(t, clause, "c.is_active")
	assert.Contains(t, clause, "c.body_type = $1")
	assert.Equal(t, []interface{}{domain.BodySUV, 12, 0}, args)
}

// The owner feed must not filter on is_active: a deactivated listing has to
// stay visible to its owner or there is no way to re-activate it.
func TestCarListClause_OwnerFeedIncludesInactive(t *testing.T) {
	owner := uuid.New()
	clause, args := carListClause(domain.CarFilter{
		OwnerID: owner,
		Page:    2,
		PerPage: 12,
	})

	assert.NotContains(t, clause, "is_active")
	assert.Contains(t, clause, "c.owner_id = $1")
	assert.Equal(t, []interface{}{owner, 12, 12}, args)
}
