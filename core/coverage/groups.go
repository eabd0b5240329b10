package coverage

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/syllabio/backend/core/phone"
	"github.com/syllabio/backend/core/syllabus"
)

// Group bundles every class record sharing a phone, for admin views.
type Group struct {
	Phone       string    `json:"phone"`
	Records     []Record  `json:"records"`
	LastUpdated time.Time `json:"last_updated"`
}

// GroupFilter narrows groups; zero values pass everything through.
type GroupFilter struct {
	Class  syllabus.Class
	Search string
}

// GroupByPhone groups records by phone. Member records are sorted by class
// ascending then updatedAt descending; groups by LastUpdated descending.
func GroupByPhone(records []Record) []Group {
	byPhone := make(map[string]*Group)
	order := make([]string, 0, len(records))
	for _, rec := range records {
		grp, ok := byPhone[rec.Phone]
		if !ok {
			grp = &Group{Phone: rec.Phone, LastUpdated: rec.UpdatedAt}
			byPhone[rec.Phone] = grp
			order = append(order, rec.Phone)
		}
		grp.Records = append(grp.Records, rec)
		if rec.UpdatedAt.After(grp.LastUpdated) {
			grp.LastUpdated = rec.UpdatedAt
		}
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		grp := *byPhone[key]
		sort.SliceStable(grp.Records, func(i, j int) bool {
			a, b := grp.Records[i], grp.Records[j]
			if a.Class == b.Class {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return a.Class < b.Class
		})
		groups = append(groups, grp)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.LastUpdated.Equal(b.LastUpdated) {
			return a.Phone < b.Phone
		}
		return a.LastUpdated.After(b.LastUpdated)
	})
	return groups
}

// FilterGroups applies the class and search filters. A group passes the class
// filter if any member record matches; the search filter if the phone (raw or
// formatted), a record id, a class, or any text inside a record's serialized
// tree contains the term, case-insensitively.
func FilterGroups(groups []Group, filter GroupFilter) []Group {
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	matched := make([]Group, 0, len(groups))
	for _, grp := range groups {
		if filter.Class != "" && !groupHasClass(grp, filter.Class) {
			continue
		}
		if term != "" && !groupMatches(grp, term) {
			continue
		}
		matched = append(matched, grp)
	}
	return matched
}

func groupHasClass(grp Group, class syllabus.Class) bool {
	for _, rec := range grp.Records {
		if rec.Class == class {
			return true
		}
	}
	return false
}

// FilterRecords applies the search filter to a flat record list, preserving
// the input order. Matching rules are the same as FilterGroups'.
func FilterRecords(records []Record, search string) []Record {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return records
	}

	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if recordMatches(rec, term) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func groupMatches(grp Group, term string) bool {
	for _, rec := range grp.Records {
		if recordMatches(rec, term) {
			return true
		}
	}
	return false
}

func recordMatches(rec Record, term string) bool {
	if strings.Contains(strings.ToLower(rec.Phone), term) ||
		strings.Contains(strings.ToLower(phone.Format(rec.Phone)), term) {
		return true
	}
	if strings.Contains(strconv.Itoa(rec.ID), term) {
		return true
	}
	if strings.Contains(strings.ToLower(string(rec.Class)), term) {
		return true
	}
	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(payload)), term)
}
