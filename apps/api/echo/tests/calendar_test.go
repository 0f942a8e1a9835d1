package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shulehub/shule/core/calendar"
	"github.com/shulehub/shule/core/user"
)

func Test_calendarApi_monthGrid(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	token := getToken(t, usr)

	createEvent := func(title, date string) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/events", token,
			[]byte(`{"title": "`+title+`", "date": "`+date+`", "type": "exam"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("createEvent(%s) failed! code = %v; body %s", title, rec.Code, rec.Body.String())
		}
	}
	createEvent("Math exam", "2025-06-15")
	createEvent("Quran recital", "2025-06-15")
	createEvent("Sports day", "2025-06-20")
	createEvent("Other month", "2025-07-01")

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/calendar/2025/6")
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Month out of range", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar/2025/13", token)
		app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"month": "month must be 1 - 12"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("June 2025", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar/2025/6", token)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Year  int                `json:"year"`
			Month int                `json:"month"`
			Cells []calendar.DayCell `json:"cells"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json.Unmarshal() failed, %v", err)
		}

		// June 1st 2025 is a Sunday: no leading blanks, 30 days, 5 trailing blanks
		if len(resp.Cells) != 35 {
			t.Fatalf("cells length = %d; want 35", len(resp.Cells))
		}
		if !resp.Cells[0].Valid || resp.Cells[0].Day != 1 {
			t.Errorf("cells[0] = %+v; want day 1", resp.Cells[0])
		}
		if resp.Cells[34].Valid {
			t.Error("trailing cells must be blanks")
		}

		day15 := resp.Cells[14]
		if len(day15.Events) != 2 {
			t.Errorf("day 15 events = %d; want 2", len(day15.Events))
		}
		day20 := resp.Cells[19]
		if len(day20.Events) != 1 {
			t.Errorf("day 20 events = %d; want 1", len(day20.Events))
		}
		// the July event must not leak into June
		for _, cell := range resp.Cells {
			for _, ev := range cell.Events {
				if ev.Title == "Other month" {
					t.Error("July event leaked into the June grid")
				}
			}
		}
	})
}
