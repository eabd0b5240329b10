package coverage

import (
	"github.com/syllabio/backend/core/syllabus"
)

// NewTestIndex builds a small two-class definition index for tests.
func NewTestIndex() *syllabus.Index {
	return syllabus.NewIndex(map[syllabus.Class][]syllabus.RawSubject{
		syllabus.Class11: {
			{
				Key: "physics",
				Chapters: []syllabus.RawChapter{
					{Title: "Kinematics", Topics: []string{"Displacement", "Velocity", "Acceleration"}},
					{Title: "Laws of Motion", Topics: []string{"Inertia", "Friction"}},
				},
			},
			{
				Key: "organic_chem",
				Chapters: []syllabus.RawChapter{
					{Title: "Basic Principles of Organic Chemistry", Topics: []string{"Nomenclature", "Isomerism"}},
				},
			},
		},
		syllabus.Class12: {
			{
				Key: "physics",
				Chapters: []syllabus.RawChapter{
					{Title: "Electrostatics", Topics: []string{"Coulomb's Law", "Electric Field"}},
				},
			},
		},
	})
}
