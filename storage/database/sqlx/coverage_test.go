package sqlxrepos

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

func Test_coverageRow_record(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid data decodes", func(t *testing.T) {
		row := coverageRow{
			ID:        3,
			Phone:     "9876543210",
			Class:     "11",
			Data:      []byte(`{"physics":{"Kinematics":{"completed":false,"comment":"","topics":{"Velocity":{"completed":true,"comment":"done in class"}}}}}`),
			CreatedAt: now,
			UpdatedAt: now,
		}

		rec, err := row.record()
		require.NoError(t, err)
		assert.Equal(t, 3, rec.ID)
		assert.Equal(t, "9876543210", rec.Phone)
		assert.Equal(t, syllabus.Class11, rec.Class)
		assert.Equal(t, now, rec.CreatedAt)
		assert.True(t, rec.Data["physics"]["Kinematics"].Topics["Velocity"].Completed)
		assert.Equal(t, "done in class", rec.Data["physics"]["Kinematics"].Topics["Velocity"].Comment)
	})

	t.Run("corrupt data reports the row id", func(t *testing.T) {
		row := coverageRow{ID: 7, Phone: "9876543210", Class: "11", Data: []byte("{oops")}

		_, err := row.record()
		require.Error(t, err)

		var cErr *coverage.CorruptDataError
		require.True(t, errors.As(err, &cErr))
		assert.Equal(t, 7, cErr.ID)
		assert.Error(t, cErr.Unwrap())
		assert.Contains(t, err.Error(), "record 7")
	})
}
