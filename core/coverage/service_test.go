package coverage_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
	inmemdb "github.com/syllabio/backend/storage/database/inmem"
)

func setup(t *testing.T) (*coverage.Service, coverage.Repository) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := inmemdb.NewCoverageRepository(db)
	svc := coverage.NewService(coverage.NewTestIndex(), repo)
	return svc, repo
}

func TestService_Ensure_createsBlank(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	rec, isNew, err := svc.Ensure(ctx, "987-654 3210", syllabus.Class11)
	assert.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "9876543210", rec.Phone) // stored under the normalized key
	assert.Equal(t, syllabus.Class11, rec.Class)

	// every class-11 chapter/topic present and unset
	kin := rec.Data["physics"]["Kinematics"]
	assert.False(t, kin.Completed)
	assert.Len(t, kin.Topics, 3)
	assert.Contains(t, rec.Data["physics"], "Laws of Motion")
	assert.Contains(t, rec.Data, "organic_chem")

	// second call returns the same record, not a new one
	again, isNew, err := svc.Ensure(ctx, "(987) 654-3210", syllabus.Class11)
	assert.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, rec.ID, again.ID)
}

func TestService_Ensure_invalidPhone(t *testing.T) {
	svc, _ := setup(t)

	_, _, err := svc.Ensure(context.Background(), "12345", syllabus.Class11)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone", vErr.Fields[0].Field)
}

func TestService_Ensure_unknownClass(t *testing.T) {
	svc, _ := setup(t)

	_, _, err := svc.Ensure(context.Background(), "9876543210", syllabus.Class("13"))
	assert.Equal(t, coverage.ErrUnknownClass, errors.Cause(err))
}

func TestService_Mutate_topicToggles(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	// toggling all topics under a chapter derives its completion
	for _, topic := range []string{"Displacement", "Velocity", "Acceleration"} {
		topic := topic
		_, err := svc.Mutate(ctx, "9876543210", syllabus.Class11, func(draft coverage.Data) coverage.Data {
			return coverage.ToggleTopic(draft, "physics", "Kinematics", topic, true)
		})
		assert.NoError(t, err)
	}

	rec, isNew, err := svc.Ensure(ctx, "9876543210", syllabus.Class11)
	assert.NoError(t, err)
	assert.False(t, isNew)
	assert.True(t, rec.Data["physics"]["Kinematics"].Completed)
}

func TestService_Mutate_nilReturnUsesDraft(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	rec, err := svc.Mutate(ctx, "9876543210", syllabus.Class11, func(draft coverage.Data) coverage.Data {
		ch := draft["physics"]["Kinematics"]
		ch.Comment = "edited in place"
		draft["physics"]["Kinematics"] = ch
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "edited in place", rec.Data["physics"]["Kinematics"].Comment)
}

func TestService_Replace_reconcilesPayload(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	// a sparse client payload cannot bypass shape rules
	payload := coverage.Data{
		"physics": coverage.SubjectState{
			"Kinematics": coverage.ChapterState{
				Topics: map[string]coverage.TopicState{
					"Velocity": {Completed: true, Comment: "organic growth"},
				},
			},
		},
	}

	rec, err := svc.Replace(ctx, "9876543210", syllabus.Class11, payload)
	assert.NoError(t, err)
	assert.True(t, rec.Data["physics"]["Kinematics"].Topics["Velocity"].Completed)
	assert.Contains(t, rec.Data["physics"]["Kinematics"].Topics, "Displacement")
	assert.Contains(t, rec.Data["physics"], "Laws of Motion")
	assert.Contains(t, rec.Data, "organic_chem")
}

func TestService_History_twoClasses(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	c11, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class11)
	assert.NoError(t, err)
	c12, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class12)
	assert.NoError(t, err)
	assert.NotEqual(t, c11.ID, c12.ID)

	records, err := svc.History(ctx, "987 654 3210")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, c12.ID, records[0].ID) // most recent first
	assert.Equal(t, c11.ID, records[1].ID)
}

func TestService_Query_classFilter(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class11)
	assert.NoError(t, err)
	_, _, err = svc.Ensure(ctx, "1112223334", syllabus.Class12)
	assert.NoError(t, err)

	all, err := svc.Query(ctx, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	only12, err := svc.Query(ctx, &coverage.QueryFilter{Class: syllabus.Class12})
	assert.NoError(t, err)
	assert.Len(t, only12, 1)
	assert.Equal(t, syllabus.Class12, only12[0].Class)
}

func TestService_RemoveByID(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	rec, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class11)
	assert.NoError(t, err)
	other, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class12)
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveByID(ctx, rec.ID))

	// exactly that record is gone; the key lookup misses without erroring out
	_, err = repo.GetCoverage(ctx, "9876543210", syllabus.Class11)
	assert.Equal(t, coverage.ErrNotFound, errors.Cause(err))
	_, err = svc.GetByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestService_Remove_byKey(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Ensure(ctx, "9876543210", syllabus.Class11)
	assert.NoError(t, err)

	assert.NoError(t, svc.Remove(ctx, "987-6543210", syllabus.Class11))
	_, err = svc.GetByID(ctx, 1)
	assert.Equal(t, coverage.ErrNotFound, errors.Cause(err))

	// removing again is a no-op
	assert.NoError(t, svc.Remove(ctx, "9876543210", syllabus.Class11))
}
