// Package syllabus holds the read-only definition index of the academic
// syllabus: class -> subject -> chapter -> topic. The index is authoritative
// and may grow across deployments; coverage data reconciles against it.
package syllabus

import (
	"fmt"
	"regexp"
	"strings"
)

// Class is a supported academic year.
type Class string

const (
	Class11 Class = "11"
	Class12 Class = "12"
)

var Classes = []Class{Class11, Class12}

// ParseClass validates a raw class value.
func ParseClass(raw string) (Class, bool) {
	c := Class(strings.TrimSpace(raw))
	for _, known := range Classes {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// SubjectMeta pairs a storage key with its display label.
type SubjectMeta struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// KnownSubjects lists the supported subjects in display order.
var KnownSubjects = []SubjectMeta{
	{Key: "physics", Label: "Physics"},
	{Key: "maths", Label: "Maths"},
	{Key: "physical_chem", Label: "Physical Chemistry"},
	{Key: "organic_chem", Label: "Organic Chemistry"},
	{Key: "inorganic_chem", Label: "Inorganic Chemistry"},
}

// SubjectLabel returns the display label for a subject key, or the key itself.
func SubjectLabel(key string) string {
	for _, meta := range KnownSubjects {
		if meta.Key == key {
			return meta.Label
		}
	}
	return key
}

type (
	Topic struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	Chapter struct {
		ID     string  `json:"id"`
		Title  string  `json:"title"`
		Topics []Topic `json:"topics"`
	}

	Subject struct {
		Key      string    `json:"subject"`
		Title    string    `json:"title"`
		Class    Class     `json:"grade"`
		Chapters []Chapter `json:"chapters"`
	}

	Grade struct {
		Class    Class     `json:"grade"`
		Subjects []Subject `json:"subjects"`
	}
)

// RawChapter is the source form of a chapter definition. Chapters and topics
// are ordered slices so the authored order survives decoding.
type RawChapter struct {
	Title  string   `json:"chapter"`
	Topics []string `json:"topics"`
}

// RawSubject pairs a subject key with its ordered chapter definitions.
type RawSubject struct {
	Key      string
	Chapters []RawChapter
}

// Index is the static definition tree, immutable for the process lifetime.
type Index struct {
	grades map[Class]Grade
}

// NewIndex builds the definition index, deriving a stable identifier for
// every chapter and topic from its title and position.
func NewIndex(raw map[Class][]RawSubject) *Index {
	idx := &Index{grades: make(map[Class]Grade, len(raw))}
	for class, rawSubjects := range raw {
		grade := Grade{Class: class, Subjects: make([]Subject, 0, len(rawSubjects))}
		for _, rawSubj := range rawSubjects {
			grade.Subjects = append(grade.Subjects, normalizeSubject(class, rawSubj))
		}
		idx.grades[class] = grade
	}
	return idx
}

// Grade returns the definition tree for a class.
func (idx *Index) Grade(class Class) (Grade, bool) {
	grade, ok := idx.grades[class]
	return grade, ok
}

// Subjects returns the subject definitions for a class, nil if unknown.
func (idx *Index) Subjects(class Class) []Subject {
	return idx.grades[class].Subjects
}

func normalizeSubject(class Class, raw RawSubject) Subject {
	chapterCounter := make(map[string]int)
	chapters := make([]Chapter, 0, len(raw.Chapters))
	for _, rawCh := range raw.Chapters {
		chapterID := buildStableID(fmt.Sprintf("%s-%s", class, raw.Key), rawCh.Title, chapterCounter)
		topicCounter := make(map[string]int)
		topics := make([]Topic, 0, len(rawCh.Topics))
		for _, title := range rawCh.Topics {
			topics = append(topics, Topic{
				ID:    buildStableID(chapterID, title, topicCounter),
				Title: title,
			})
		}
		chapters = append(chapters, Chapter{
			ID:     chapterID,
			Title:  rawCh.Title,
			Topics: topics,
		})
	}
	return Subject{
		Key:      raw.Key,
		Title:    SubjectLabel(raw.Key),
		Class:    class,
		Chapters: chapters,
	}
}

// buildStableID derives a collision-safe slug: duplicate titles within the
// same parent receive a disambiguating "-N" suffix.
func buildStableID(prefix, label string, counter map[string]int) string {
	base := slugify(label)
	if base == "" {
		base = "item"
	}
	key := prefix + "-" + base
	seen := counter[key]
	counter[key] = seen + 1
	if seen == 0 {
		return key
	}
	return fmt.Sprintf("%s-%d", key, seen+1)
}

var (
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRe  = regexp.MustCompile(`-{2,}`)
	edgeDashesRe = regexp.MustCompile(`^-+|-+$`)
)

func slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = nonSlugRe.ReplaceAllString(s, "-")
	s = edgeDashesRe.ReplaceAllString(s, "")
	return multiDashRe.ReplaceAllString(s, "-")
}
