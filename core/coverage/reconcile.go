package coverage

import (
	"github.com/pkg/errors"

	"github.com/syllabio/backend/core/syllabus"
)

// ErrUnknownClass signals that a class has no syllabus definition; this is a
// config/version mismatch, fatal to the request.
var ErrUnknownClass = errors.New("no syllabus definition for class")

// Blank walks the definition index for `class` and produces a fully-populated
// tree with every chapter and topic unset.
func Blank(idx *syllabus.Index, class syllabus.Class) (Data, error) {
	grade, ok := idx.Grade(class)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "class %q", class)
	}

	data := make(Data, len(grade.Subjects))
	for _, subj := range grade.Subjects {
		subjState := make(SubjectState, len(subj.Chapters))
		for _, ch := range subj.Chapters {
			topics := make(map[string]TopicState, len(ch.Topics))
			for _, tp := range ch.Topics {
				topics[tp.Title] = TopicState{}
			}
			subjState[ch.Title] = ChapterState{Topics: topics}
		}
		data[subj.Key] = subjState
	}
	return data, nil
}

// Reconcile fills the gaps in a stored tree against the current definition
// for `class`. Lookup is by title. Additive-only: entries for chapters/topics
// no longer in the definition are preserved, never removed. Idempotent.
func Reconcile(idx *syllabus.Index, class syllabus.Class, stored Data) (Data, error) {
	grade, ok := idx.Grade(class)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "class %q", class)
	}

	next := stored.Clone()
	if next == nil {
		next = make(Data, len(grade.Subjects))
	}
	for _, subj := range grade.Subjects {
		subjState := next[subj.Key]
		if subjState == nil {
			subjState = make(SubjectState, len(subj.Chapters))
			next[subj.Key] = subjState
		}
		for _, ch := range subj.Chapters {
			chState, ok := subjState[ch.Title]
			if !ok {
				chState = ChapterState{}
			}
			if chState.Topics == nil {
				chState.Topics = make(map[string]TopicState, len(ch.Topics))
			}
			for _, tp := range ch.Topics {
				if _, ok := chState.Topics[tp.Title]; !ok {
					chState.Topics[tp.Title] = TopicState{}
				}
			}
			subjState[ch.Title] = chState
		}
	}
	return next, nil
}

// ToggleChapter sets a chapter's completion and cascades the same value to
// every topic under it. Missing entries are created first.
func ToggleChapter(d Data, subjectKey, chapterTitle string, completed bool) Data {
	next := ensureChapter(d, subjectKey, chapterTitle)
	chState := next[subjectKey][chapterTitle]
	chState.Completed = completed
	for title, tpState := range chState.Topics {
		tpState.Completed = completed
		chState.Topics[title] = tpState
	}
	next[subjectKey][chapterTitle] = chState
	return next
}

// ToggleTopic sets a topic's completion and recomputes the chapter's
// completion as the AND over all its topics.
func ToggleTopic(d Data, subjectKey, chapterTitle, topicTitle string, completed bool) Data {
	next := ensureTopic(d, subjectKey, chapterTitle, topicTitle)
	chState := next[subjectKey][chapterTitle]

	tpState := chState.Topics[topicTitle]
	tpState.Completed = completed
	chState.Topics[topicTitle] = tpState

	allCompleted := true
	for _, tp := range chState.Topics {
		if !tp.Completed {
			allCompleted = false
			break
		}
	}
	chState.Completed = allCompleted

	next[subjectKey][chapterTitle] = chState
	return next
}

// SetChapterComment replaces a chapter's comment. No cascade.
func SetChapterComment(d Data, subjectKey, chapterTitle, comment string) Data {
	next := ensureChapter(d, subjectKey, chapterTitle)
	chState := next[subjectKey][chapterTitle]
	chState.Comment = comment
	next[subjectKey][chapterTitle] = chState
	return next
}

// SetTopicComment replaces a topic's comment. No cascade.
func SetTopicComment(d Data, subjectKey, chapterTitle, topicTitle, comment string) Data {
	next := ensureTopic(d, subjectKey, chapterTitle, topicTitle)
	chState := next[subjectKey][chapterTitle]
	tpState := chState.Topics[topicTitle]
	tpState.Comment = comment
	chState.Topics[topicTitle] = tpState
	next[subjectKey][chapterTitle] = chState
	return next
}

// ensureChapter deep-copies the tree and default-inserts the subject/chapter
// entries if absent.
func ensureChapter(d Data, subjectKey, chapterTitle string) Data {
	next := d.Clone()
	if next == nil {
		next = make(Data)
	}
	subjState := next[subjectKey]
	if subjState == nil {
		subjState = make(SubjectState)
		next[subjectKey] = subjState
	}
	chState, ok := subjState[chapterTitle]
	if !ok {
		chState = ChapterState{}
	}
	if chState.Topics == nil {
		chState.Topics = make(map[string]TopicState)
	}
	subjState[chapterTitle] = chState
	return next
}

func ensureTopic(d Data, subjectKey, chapterTitle, topicTitle string) Data {
	next := ensureChapter(d, subjectKey, chapterTitle)
	chState := next[subjectKey][chapterTitle]
	if _, ok := chState.Topics[topicTitle]; !ok {
		chState.Topics[topicTitle] = TopicState{}
	}
	next[subjectKey][chapterTitle] = chState
	return next
}
