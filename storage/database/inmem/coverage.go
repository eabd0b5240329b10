package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

type coverageRepository struct {
	db *coverageTable
}

var _ coverage.Repository = (*coverageRepository)(nil)

func NewCoverageRepository(db *DB) *coverageRepository {
	return &coverageRepository{db: db.coverage}
}

func (repo *coverageRepository) query() []coverage.Record {
	records := make([]coverage.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		cp := *rec
		cp.Data = rec.Data.Clone()
		records = append(records, cp)
	}
	return records
}

// sortNewestFirst orders by updatedAt descending, id descending as tiebreak.
func sortNewestFirst(records []coverage.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.ID > b.ID
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})
}

func (repo *coverageRepository) SaveCoverage(ctx context.Context, num string, class syllabus.Class, data coverage.Data) (coverage.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	for _, rec := range repo.db.table {
		if rec.Phone == num && rec.Class == class {
			rec.Data = data.Clone()
			rec.UpdatedAt = now
			cp := *rec
			cp.Data = rec.Data.Clone()
			return cp, nil
		}
	}

	repo.db.pkCount++
	rec := &coverage.Record{
		ID:        repo.db.pkCount,
		Phone:     num,
		Class:     class,
		Data:      data.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.db.table[rec.ID] = rec
	cp := *rec
	cp.Data = rec.Data.Clone()
	return cp, nil
}

func (repo *coverageRepository) GetCoverage(ctx context.Context, num string, class syllabus.Class) (coverage.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, rec := range repo.query() {
		if rec.Phone == num && rec.Class == class {
			return rec, nil
		}
	}
	return coverage.Record{}, coverage.ErrNotFound
}

func (repo *coverageRepository) GetCoverageByID(ctx context.Context, id int) (coverage.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.table[id]; ok {
		cp := *rec
		cp.Data = rec.Data.Clone()
		return cp, nil
	}
	return coverage.Record{}, coverage.ErrNotFound
}

func (repo *coverageRepository) QueryCoverageByPhone(ctx context.Context, num string) ([]coverage.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]coverage.Record, 0, 2)
	for _, rec := range repo.query() {
		if rec.Phone == num {
			records = append(records, rec)
		}
	}
	sortNewestFirst(records)
	return records, nil
}

func (repo *coverageRepository) QueryCoverage(ctx context.Context, filter *coverage.QueryFilter) ([]coverage.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := repo.query()
	if filter != nil && filter.Class != "" {
		matched := records[:0]
		for _, rec := range records {
			if rec.Class == filter.Class {
				matched = append(matched, rec)
			}
		}
		records = matched
	}
	sortNewestFirst(records)
	return records, nil
}

func (repo *coverageRepository) DeleteCoverageByID(ctx context.Context, id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.table, id)
	return nil
}

func (repo *coverageRepository) DeleteCoverage(ctx context.Context, num string, class syllabus.Class) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for id, rec := range repo.db.table {
		if rec.Phone == num && rec.Class == class {
			delete(repo.db.table, id)
		}
	}
	return nil
}
