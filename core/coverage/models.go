// Package coverage implements the coverage data reconciliation and
// persistence service: per-(phone, class) progress trees kept in sync with
// the syllabus definition index.
package coverage

import (
	"time"

	"github.com/syllabio/backend/core/syllabus"
)

type (
	// TopicState is the completion/comment state of a single topic.
	TopicState struct {
		Completed bool   `json:"completed"`
		Comment   string `json:"comment"`
	}

	// ChapterState aggregates the topic states under a chapter. Completed is
	// derived: true iff all topics are completed at the last mutation.
	ChapterState struct {
		Completed bool                  `json:"completed"`
		Comment   string                `json:"comment"`
		Topics    map[string]TopicState `json:"topics"`
	}

	// SubjectState maps chapter titles to their state.
	SubjectState map[string]ChapterState

	// Data is the full progress tree for one (phone, class) pair, keyed by
	// subject key, then chapter title, then topic title.
	Data map[string]SubjectState
)

// Clone returns a deep copy of the tree; mutating the copy never touches the
// original.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	next := make(Data, len(d))
	for subjKey, subjState := range d {
		nextSubj := make(SubjectState, len(subjState))
		for chTitle, chState := range subjState {
			topics := make(map[string]TopicState, len(chState.Topics))
			for tpTitle, tpState := range chState.Topics {
				topics[tpTitle] = tpState
			}
			chState.Topics = topics
			nextSubj[chTitle] = chState
		}
		next[subjKey] = nextSubj
	}
	return next
}

// Record is a persisted progress tree with its storage identity.
type Record struct {
	ID        int            `json:"id"`
	Phone     string         `json:"phone"`
	Class     syllabus.Class `json:"student_class"`
	Data      Data           `json:"data"`
	CreatedAt time.Time      `json:"created_at"` // UTC
	UpdatedAt time.Time      `json:"updated_at"` // UTC
}

// QueryFilter narrows record listings. A zero filter means "everything".
type QueryFilter struct {
	Class syllabus.Class
}
