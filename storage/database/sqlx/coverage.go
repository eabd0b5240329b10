package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

var _ coverage.Repository = (*coverageRepository)(nil)

const baseSelect = `SELECT id, phone, student_class, data, created_at, updated_at FROM coverage`

type coverageRow struct {
	ID        int       `db:"id"`
	Phone     string    `db:"phone"`
	Class     string    `db:"student_class"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row coverageRow) record() (coverage.Record, error) {
	var data coverage.Data
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return coverage.Record{}, &coverage.CorruptDataError{ID: row.ID, Err: err}
	}
	return coverage.Record{
		ID:        row.ID,
		Phone:     row.Phone,
		Class:     syllabus.Class(row.Class),
		Data:      data,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

type coverageRepository struct {
	db *sqlx.DB
}

func NewCoverageRepository(db *sqlx.DB) *coverageRepository {
	return &coverageRepository{db: db}
}

func (repo *coverageRepository) SaveCoverage(ctx context.Context, num string, class syllabus.Class, data coverage.Data) (coverage.Record, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return coverage.Record{}, errors.Wrap(err, "serializing coverage data")
	}

	query := `
INSERT INTO coverage (phone, student_class, data)
VALUES ($1, $2, $3)
ON CONFLICT (phone, student_class)
DO UPDATE SET data = EXCLUDED.data, updated_at = now()
RETURNING id, phone, student_class, data, created_at, updated_at`

	var row coverageRow
	if err = repo.db.GetContext(ctx, &row, query, num, string(class), payload); err != nil {
		return coverage.Record{}, errors.Wrap(err, "saving coverage")
	}
	return row.record()
}

func (repo *coverageRepository) GetCoverage(ctx context.Context, num string, class syllabus.Class) (coverage.Record, error) {
	var row coverageRow
	err := repo.db.GetContext(ctx, &row, baseSelect+` WHERE phone = $1 AND student_class = $2`, num, string(class))
	if err != nil {
		return coverage.Record{}, trapNoRowsErr(err)
	}
	return row.record()
}

func (repo *coverageRepository) GetCoverageByID(ctx context.Context, id int) (coverage.Record, error) {
	var row coverageRow
	err := repo.db.GetContext(ctx, &row, baseSelect+` WHERE id = $1`, id)
	if err != nil {
		return coverage.Record{}, trapNoRowsErr(err)
	}
	return row.record()
}

func (repo *coverageRepository) QueryCoverageByPhone(ctx context.Context, num string) ([]coverage.Record, error) {
	var rows []coverageRow
	err := repo.db.SelectContext(ctx, &rows, baseSelect+` WHERE phone = $1 ORDER BY updated_at DESC, id DESC`, num)
	if err != nil {
		return nil, errors.Wrap(err, "querying coverage by phone")
	}
	return records(rows)
}

func (repo *coverageRepository) QueryCoverage(ctx context.Context, filter *coverage.QueryFilter) ([]coverage.Record, error) {
	query := baseSelect
	args := make([]interface{}, 0, 1)
	if filter != nil && filter.Class != "" {
		query += ` WHERE student_class = $1`
		args = append(args, string(filter.Class))
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	var rows []coverageRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying coverage")
	}
	return records(rows)
}

func (repo *coverageRepository) DeleteCoverageByID(ctx context.Context, id int) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM coverage WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting coverage")
	}
	return nil
}

func (repo *coverageRepository) DeleteCoverage(ctx context.Context, num string, class syllabus.Class) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM coverage WHERE phone = $1 AND student_class = $2`, num, string(class))
	if err != nil {
		return errors.Wrap(err, "deleting coverage")
	}
	return nil
}

func records(rows []coverageRow) ([]coverage.Record, error) {
	recs := make([]coverage.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func trapNoRowsErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return coverage.ErrNotFound
	}
	return errors.Wrap(err, "getting coverage")
}
