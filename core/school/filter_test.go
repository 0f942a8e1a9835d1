package school

import (
	"reflect"
	"testing"
)

func TestApply(t *testing.T) {
	students := []Student{
		{ID: "1", Name: "Fatima", Email: "fatima@test.cd", ClassID: "c1", Status: StatusActive},
		{ID: "2", Name: "Yusuf", Email: "yusuf@test.cd", ClassID: "c1", Status: StatusInactive},
		{ID: "3", Name: "Zayd", Email: "zayd@test.cd", ClassID: "c2", Status: StatusActive},
		{ID: "4", Name: "Nuh", Email: "nuh@test.cd", ClassID: "c2", Status: StatusGraduated},
	}

	ids := func(matched []Student) []string {
		got := make([]string, 0, len(matched))
		for _, s := range matched {
			got = append(got, s.ID)
		}
		return got
	}

	tests := []struct {
		name  string
		preds []Predicate[Student]
		want  []string
	}{
		{name: "no predicates", want: []string{"1", "2", "3", "4"}},
		{name: "class", preds: []Predicate[Student]{StudentInClass("c1")}, want: []string{"1", "2"}},
		{name: "class all", preds: []Predicate[Student]{StudentInClass(FilterAll)}, want: []string{"1", "2", "3", "4"}},
		{name: "status", preds: []Predicate[Student]{StudentHasStatus(StatusActive)}, want: []string{"1", "3"}},
		{name: "search name", preds: []Predicate[Student]{StudentMatches("FAT")}, want: []string{"1"}},
		{name: "search email", preds: []Predicate[Student]{StudentMatches("zayd@")}, want: []string{"3"}},
		{name: "search empty term", preds: []Predicate[Student]{StudentMatches("")}, want: []string{"1", "2", "3", "4"}},
		{
			name:  "AND composition",
			preds: []Predicate[Student]{StudentInClass("c2"), StudentHasStatus(StatusActive)},
			want:  []string{"3"},
		},
		{
			name:  "AND to empty",
			preds: []Predicate[Student]{StudentInClass("c1"), StudentHasStatus(StatusGraduated)},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(students, tt.preds...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_isPure(t *testing.T) {
	students := []Student{
		{ID: "1", ClassID: "c1"},
		{ID: "2", ClassID: "c2"},
		{ID: "3", ClassID: "c1"},
	}
	orig := append([]Student(nil), students...)

	// chained application equals single application of all predicates
	chained := Apply(Apply(students, StudentInClass("c1")), StudentMatches(""))
	combined := Apply(students, StudentInClass("c1"), StudentMatches(""))
	if !reflect.DeepEqual(chained, combined) {
		t.Errorf("chained = %v, combined = %v", chained, combined)
	}

	if !reflect.DeepEqual(students, orig) {
		t.Error("Apply() must not mutate its input")
	}
}

func TestStudentQueryFilter(t *testing.T) {
	students := []Student{
		{ID: "1", Name: "Fatima", ClassID: "c1", Status: StatusActive},
		{ID: "2", Name: "Yusuf", ClassID: "c1", Status: StatusInactive},
		{ID: "3", Name: "Fatima Z", ClassID: "c2", Status: StatusActive},
	}

	qf := StudentQueryFilter{ClassID: " c1 ", Status: " ACTIVE ", Search: "  fati  "}
	qf.Clean()
	if qf.ClassID != "c1" || qf.Status != "active" || qf.Search != "fati" {
		t.Fatalf("Clean() = %+v", qf)
	}

	matched := Apply(students, qf.Predicates()...)
	if len(matched) != 1 || matched[0].ID != "1" {
		t.Errorf("matched = %v, want only student 1", matched)
	}
}
