package syllabus

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		raw    string
		want   Class
		wantOK bool
	}{
		{"11", Class11, true},
		{"12", Class12, true},
		{" 11 ", Class11, true},
		{"10", "", false},
		{"", "", false},
		{"eleven", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseClass(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewIndex_stableIDs(t *testing.T) {
	idx := NewIndex(map[Class][]RawSubject{
		Class11: {
			{
				Key: "physics",
				Chapters: []RawChapter{
					{Title: "Units & Measurements", Topics: []string{"SI Units", "Errors"}},
					{Title: "Kinematics", Topics: []string{"Motion in a Straight Line", "Motion in a Straight Line"}},
					{Title: "Kinematics", Topics: []string{"Projectile Motion"}},
				},
			},
		},
	})

	grade, ok := idx.Grade(Class11)
	assert.True(t, ok)
	assert.Len(t, grade.Subjects, 1)

	chapters := grade.Subjects[0].Chapters
	assert.Len(t, chapters, 3)

	// titles with punctuation slugify cleanly
	assert.Equal(t, "11-physics-units-measurements", chapters[0].ID)
	assert.Equal(t, "11-physics-units-measurements-si-units", chapters[0].Topics[0].ID)

	// duplicate chapter titles within a subject get a "-N" suffix
	assert.Equal(t, "11-physics-kinematics", chapters[1].ID)
	assert.Equal(t, "11-physics-kinematics-2", chapters[2].ID)

	// duplicate topic titles within a chapter get a "-N" suffix
	assert.Equal(t, "11-physics-kinematics-motion-in-a-straight-line", chapters[1].Topics[0].ID)
	assert.Equal(t, "11-physics-kinematics-motion-in-a-straight-line-2", chapters[1].Topics[1].ID)

	// definition order is preserved
	assert.Equal(t, "Units & Measurements", chapters[0].Title)
	assert.Equal(t, "Kinematics", chapters[1].Title)
}

func TestNewIndex_unknownClass(t *testing.T) {
	idx := NewIndex(map[Class][]RawSubject{})
	_, ok := idx.Grade(Class12)
	assert.False(t, ok)
	assert.Nil(t, idx.Subjects(Class12))
}

func TestSubjectLabel(t *testing.T) {
	assert.Equal(t, "Organic Chemistry", SubjectLabel("organic_chem"))
	assert.Equal(t, "astronomy", SubjectLabel("astronomy")) // unknown key falls through
}

func TestLoad(t *testing.T) {
	chapterJSON := []byte(`[{"chapter": "Kinematics", "topics": ["Displacement", "Velocity"]}]`)
	fsys := fstest.MapFS{}
	for _, class := range Classes {
		for _, meta := range KnownSubjects {
			fsys["syllabus/"+string(class)+"/"+meta.Key+".json"] = &fstest.MapFile{Data: chapterJSON}
		}
	}

	idx, err := Load(fsys)
	assert.NoError(t, err)

	for _, class := range Classes {
		grade, ok := idx.Grade(class)
		assert.True(t, ok)
		assert.Len(t, grade.Subjects, len(KnownSubjects))
		for _, subj := range grade.Subjects {
			assert.Len(t, subj.Chapters, 1)
			assert.Equal(t, "Kinematics", subj.Chapters[0].Title)
		}
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	assert.Error(t, err)
}
