package coverage

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/phone"
	"github.com/syllabio/backend/core/syllabus"
)

var (
	// ErrNotFound signals a missed lookup by id or (phone, class) key.
	ErrNotFound = errors.New("coverage record not found")

	errInvalidPhone = errors.New("enter a valid phone number (10 to 15 digits)")
)

// CorruptDataError reports a stored tree that cannot be decoded, surfacing
// the offending record id for operator diagnosis.
type CorruptDataError struct {
	ID  int
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupted coverage data in record %d: %v", e.ID, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

type (
	// Repository is the persistence contract for coverage records.
	// SaveCoverage upserts on the unique (phone, class) key; deletes are
	// unconditional (a missing key is a no-op, not an error).
	Repository interface {
		SaveCoverage(ctx context.Context, num string, class syllabus.Class, data Data) (Record, error)
		GetCoverage(ctx context.Context, num string, class syllabus.Class) (Record, error)
		GetCoverageByID(ctx context.Context, id int) (Record, error)
		// QueryCoverageByPhone returns all classes for a phone, most recently
		// updated first.
		QueryCoverageByPhone(ctx context.Context, num string) ([]Record, error)
		// QueryCoverage lists records sorted by updatedAt descending, id
		// descending as tiebreak; a nil filter lists everything.
		QueryCoverage(ctx context.Context, filter *QueryFilter) ([]Record, error)
		DeleteCoverageByID(ctx context.Context, id int) error
		DeleteCoverage(ctx context.Context, num string, class syllabus.Class) error
	}

	// MutateFunc receives a deep-copied draft of the stored tree and returns
	// the next tree; returning nil means "use the mutated draft".
	MutateFunc func(draft Data) Data

	Service struct {
		idx  *syllabus.Index
		repo Repository
	}
)

func NewService(idx *syllabus.Index, repo Repository) *Service {
	return &Service{idx: idx, repo: repo}
}

// cleanPhone validates and normalizes the identity before any persistence
// call; callers never reach the repository with an invalid phone.
func (svc *Service) cleanPhone(raw string) (string, error) {
	if !phone.IsValid(raw) {
		return "", core.NewValidationError(errInvalidPhone,
			core.FieldError{Field: "phone", Error: errInvalidPhone.Error()})
	}
	return phone.Normalize(raw), nil
}

// Ensure returns the existing (phone, class) record, creating a blank one on
// first access. The second return reports whether a record was created.
func (svc *Service) Ensure(ctx context.Context, rawPhone string, class syllabus.Class) (Record, bool, error) {
	num, err := svc.cleanPhone(rawPhone)
	if err != nil {
		return Record{}, false, err
	}

	rec, err := svc.repo.GetCoverage(ctx, num, class)
	if err == nil {
		return rec, false, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return Record{}, false, err
	}

	blank, err := Blank(svc.idx, class)
	if err != nil {
		return Record{}, false, err
	}
	rec, err = svc.repo.SaveCoverage(ctx, num, class, blank)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Mutate is the single entry point for structured edits: it loads the record
// (synthesizing a blank one if absent), hands a deep-copied draft to `fn`,
// and persists the result.
func (svc *Service) Mutate(ctx context.Context, rawPhone string, class syllabus.Class, fn MutateFunc) (Record, error) {
	num, err := svc.cleanPhone(rawPhone)
	if err != nil {
		return Record{}, err
	}

	rec, err := svc.repo.GetCoverage(ctx, num, class)
	if errors.Cause(err) == ErrNotFound {
		blank, berr := Blank(svc.idx, class)
		if berr != nil {
			return Record{}, berr
		}
		rec, err = svc.repo.SaveCoverage(ctx, num, class, blank)
	}
	if err != nil {
		return Record{}, err
	}

	draft := rec.Data.Clone()
	next := fn(draft)
	if next == nil {
		next = draft
	}
	return svc.repo.SaveCoverage(ctx, num, class, next)
}

// Replace persists a caller-supplied tree verbatim for the key, after running
// it through reconciliation so a client payload can never bypass shape rules.
func (svc *Service) Replace(ctx context.Context, rawPhone string, class syllabus.Class, data Data) (Record, error) {
	num, err := svc.cleanPhone(rawPhone)
	if err != nil {
		return Record{}, err
	}

	merged, err := Reconcile(svc.idx, class, data)
	if err != nil {
		return Record{}, err
	}
	return svc.repo.SaveCoverage(ctx, num, class, merged)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Record, error) {
	return svc.repo.GetCoverageByID(ctx, id)
}

// History returns every class record for a phone, most recently updated first.
func (svc *Service) History(ctx context.Context, rawPhone string) ([]Record, error) {
	num, err := svc.cleanPhone(rawPhone)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryCoverageByPhone(ctx, num)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Record, error) {
	return svc.repo.QueryCoverage(ctx, filter)
}

func (svc *Service) RemoveByID(ctx context.Context, id int) error {
	return svc.repo.DeleteCoverageByID(ctx, id)
}

func (svc *Service) Remove(ctx context.Context, rawPhone string, class syllabus.Class) error {
	num, err := svc.cleanPhone(rawPhone)
	if err != nil {
		return err
	}
	return svc.repo.DeleteCoverage(ctx, num, class)
}
