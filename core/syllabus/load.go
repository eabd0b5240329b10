package syllabus

import (
	"encoding/json"
	"io/fs"
	"path"

	"github.com/pkg/errors"
)

// Load reads the syllabus definitions from `fsys` and builds the index.
// Files are expected at syllabus/<class>/<subject>.json, each holding an
// ordered array of {"chapter": ..., "topics": [...]} objects.
func Load(fsys fs.FS) (*Index, error) {
	raw := make(map[Class][]RawSubject, len(Classes))
	for _, class := range Classes {
		subjects := make([]RawSubject, 0, len(KnownSubjects))
		for _, meta := range KnownSubjects {
			name := path.Join("syllabus", string(class), meta.Key+".json")
			payload, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, errors.Wrapf(err, "reading syllabus definition %s", name)
			}
			var chapters []RawChapter
			if err := json.Unmarshal(payload, &chapters); err != nil {
				return nil, errors.Wrapf(err, "parsing syllabus definition %s", name)
			}
			subjects = append(subjects, RawSubject{Key: meta.Key, Chapters: chapters})
		}
		raw[class] = subjects
	}
	return NewIndex(raw), nil
}
