package school

import (
	"strings"

	"github.com/shulehub/shule/core"
)

// FilterAll is the sentinel value meaning "do not filter on this field".
const FilterAll = "all"

// Predicate is a pure filter function; predicates compose with logical AND.
type Predicate[T any] func(T) bool

// Apply returns the items matching every predicate, in input order.
// It never mutates or reorders the input; no predicates returns the input as is.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	if len(preds) == 0 {
		return items
	}
	matched := make([]T, 0, len(items))
outer:
	for _, item := range items {
		for _, pred := range preds {
			if !pred(item) {
				continue outer
			}
		}
		matched = append(matched, item)
	}
	return matched
}

// Student predicates

func StudentInClass(classID string) Predicate[Student] {
	return func(s Student) bool {
		return classID == "" || classID == FilterAll || s.ClassID == classID
	}
}

func StudentHasStatus(status string) Predicate[Student] {
	return func(s Student) bool {
		return status == "" || status == FilterAll || s.Status == status
	}
}

// StudentMatches does a case-insensitive substring match on name or email.
func StudentMatches(term string) Predicate[Student] {
	term = strings.ToLower(term)
	return func(s Student) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Email), term)
	}
}

// Teacher predicates

// TeacherMatches does a case-insensitive substring match on name or subject.
func TeacherMatches(term string) Predicate[Teacher] {
	term = strings.ToLower(term)
	return func(t Teacher) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.Subject), term)
	}
}

// Assignment predicates

func AssignmentInClass(classID string) Predicate[Assignment] {
	return func(a Assignment) bool {
		return classID == "" || classID == FilterAll || a.ClassID == classID
	}
}

// StudentQueryFilter carries the student list-view filters; all fields combine
// with AND and empty (or "all") fields match everything.
type StudentQueryFilter struct {
	ClassID string `query:"class_id"`
	Status  string `query:"status"`
	Search  string `query:"search"`
}

func (qf *StudentQueryFilter) Clean() {
	qf.ClassID = core.CleanString(qf.ClassID)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Search = core.CleanString(qf.Search)
}

func (qf *StudentQueryFilter) Predicates() []Predicate[Student] {
	return []Predicate[Student]{
		StudentInClass(qf.ClassID),
		StudentHasStatus(qf.Status),
		StudentMatches(qf.Search),
	}
}
