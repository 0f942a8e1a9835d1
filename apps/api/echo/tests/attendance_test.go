package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shulehub/shule/core/attendance"
	"github.com/shulehub/shule/core/school"
	"github.com/shulehub/shule/core/user"
)

func Test_attendanceApi_markAndDaySheet(t *testing.T) {
	app := setup(t)

	teacherUsr := createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	studentUsr := createUser(t, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	teacherToken := getToken(t, teacherUsr)

	mrAli := createTeacher(t, "Mr Ali", "Mathematics")
	class := createClass(t, "Grade 1", mrAli.ID)
	fatima := createStudent(t, "Fatima", "", class.ID, school.StatusActive, 0)
	yusuf := createStudent(t, "Yusuf", "", class.ID, school.StatusActive, 0)
	createStudent(t, "Zayd", "", class.ID, school.StatusActive, 0) // never marked

	markPath := func(studentID string) string {
		return "/v1/attendance/2025-03-10/classes/" + class.ID + "/students/" + studentID
	}

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodPut, path: markPath(fatima.ID),
			body: []byte(`{"status": "present"}`), wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Staff required", method: http.MethodPut, path: markPath(fatima.ID),
			token: getToken(t, studentUsr), body: []byte(`{"status": "present"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Invalid status", method: http.MethodPut, path: markPath(fatima.ID),
			token: teacherToken, body: []byte(`{"status": "lol"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"status": "invalid attendance status"}),
		},
		{
			name: "Invalid date", method: http.MethodPut,
			path:  "/v1/attendance/2025-13-40/classes/" + class.ID + "/students/" + fatima.ID,
			token: teacherToken, body: []byte(`{"status": "present"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"date": "invalid date, expected YYYY-MM-DD"}),
		},
		{
			name: "Mark present", method: http.MethodPut, path: markPath(fatima.ID),
			token: teacherToken, body: []byte(`{"status": "present"}`), wantCode: http.StatusOK,
		},
		{
			name: "Re-mark overwrites", method: http.MethodPut, path: markPath(fatima.ID),
			token: teacherToken, body: []byte(`{"status": "late", "note": "traffic"}`), wantCode: http.StatusOK,
		},
		{
			name: "Mark second student", method: http.MethodPut, path: markPath(yusuf.ID),
			token: teacherToken, body: []byte(`{"status": "absent"}`), wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			} else if rec.Code != tt.wantCode {
				t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	t.Run("Day sheet", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/2025-03-10/classes/"+class.ID, teacherToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var sheet struct {
			Records map[string]attendance.Record `json:"records"`
			Counts  map[string]int               `json:"counts"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &sheet); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}

		// the unmarked student does not appear at all
		if len(sheet.Records) != 2 {
			t.Errorf("records length = %d; want 2", len(sheet.Records))
		}
		if got := sheet.Records[fatima.ID]; got.Status != attendance.StatusLate || got.Note != "traffic" {
			t.Errorf("fatima's record = %+v; want the re-marked one", got)
		}
		if sheet.Counts[attendance.StatusLate] != 1 || sheet.Counts[attendance.StatusAbsent] != 1 {
			t.Errorf("counts = %+v", sheet.Counts)
		}
		if sheet.Counts[attendance.StatusPresent] != 0 {
			t.Error("the overwritten mark must not count")
		}
	})

	t.Run("Day sheet of an empty day", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/2020-01-01/classes/"+class.ID, teacherToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}
		var sheet struct {
			Records map[string]attendance.Record `json:"records"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &sheet); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if len(sheet.Records) != 0 {
			t.Errorf("records length = %d; want 0", len(sheet.Records))
		}
	})
}

func Test_attendanceApi_history(t *testing.T) {
	app := setup(t)

	teacherUsr := createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	token := getToken(t, teacherUsr)

	mrAli := createTeacher(t, "Mr Ali", "Mathematics")
	class := createClass(t, "Grade 1", mrAli.ID)
	fatima := createStudent(t, "Fatima", "", class.ID, school.StatusActive, 0)

	mark := func(date, status string) {
		req, rec := newAuthRequest(http.MethodPut,
			"/v1/attendance/"+date+"/classes/"+class.ID+"/students/"+fatima.ID, token,
			[]byte(`{"status": "`+status+`"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("mark(%s) failed! code = %v; body %s", date, rec.Code, rec.Body.String())
		}
	}
	mark("2025-03-10", attendance.StatusPresent)
	mark("2025-03-11", attendance.StatusAbsent)
	mark("2025-03-12", attendance.StatusPresent)
	mark("2025-03-13", attendance.StatusExcused)

	t.Run("Missing params", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/history?student_id="+fatima.ID, token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("Full history", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet,
			"/v1/attendance/history?student_id="+fatima.ID+"&class_id="+class.ID, token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var hist attendance.History
		if err := json.Unmarshal(rec.Body.Bytes(), &hist); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if hist.Present != 2 || hist.Absent != 1 || hist.Excused != 1 || hist.Late != 0 {
			t.Errorf("totals = %+v", hist)
		}
		if len(hist.Entries) != 4 {
			t.Fatalf("entries length = %d; want 4", len(hist.Entries))
		}
		// most recent first
		if got := hist.Entries[0].Date.String(); got != "2025-03-13" {
			t.Errorf("entries[0].Date = %s; want 2025-03-13", got)
		}
		if got := hist.Entries[3].Date.String(); got != "2025-03-10" {
			t.Errorf("entries[3].Date = %s; want 2025-03-10", got)
		}
	})

	t.Run("Unknown student has an empty history", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet,
			"/v1/attendance/history?student_id=nope&class_id="+class.ID, token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}
		var hist attendance.History
		if err := json.Unmarshal(rec.Body.Bytes(), &hist); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}
		if len(hist.Entries) != 0 || hist.Present != 0 {
			t.Errorf("history = %+v; want empty", hist)
		}
	})
}
