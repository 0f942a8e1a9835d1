package school

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() failed, %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow() failed, %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed, %v", err)
	}
	return buf
}

func TestReadStudentsXLSX(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Name", "Email", "Parent Email", "Progress"},
		{"Fatima", "FATIMA@test.cd", "mom@test.cd", 80},
		{"Yusuf", "yusuf@test.cd", "", "not-a-number"},
		{"", "ghost@test.cd", "", 50}, // nameless, skipped
		{"Zayd", "", "", -5},
	})

	students, err := ReadStudentsXLSX(buf)
	if err != nil {
		t.Fatalf("ReadStudentsXLSX() failed, %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("students = %d, want 3", len(students))
	}

	if students[0].Name != "Fatima" || students[0].Email != "fatima@test.cd" || students[0].Progress != 80 {
		t.Errorf("students[0] = %+v", students[0])
	}
	if students[0].ParentEmail != "mom@test.cd" {
		t.Errorf("students[0].ParentEmail = %q", students[0].ParentEmail)
	}
	// non-numeric and negative progress both fall back to 0
	if students[1].Progress != 0 {
		t.Errorf("students[1].Progress = %d, want 0", students[1].Progress)
	}
	if students[2].Progress != 0 {
		t.Errorf("students[2].Progress = %d, want 0", students[2].Progress)
	}
}

func TestReadStudentsXLSX_splitNameColumns(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"First Name", "Last Name", "Email"},
		{"Fatima", "Zahra", "fatima@test.cd"},
		{"Yusuf", "", ""},
		{"", "Khan", ""},
	})

	students, err := ReadStudentsXLSX(buf)
	if err != nil {
		t.Fatalf("ReadStudentsXLSX() failed, %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("students = %d, want 3", len(students))
	}
	if students[0].Name != "Fatima Zahra" {
		t.Errorf("students[0].Name = %q, want %q", students[0].Name, "Fatima Zahra")
	}
	if students[1].Name != "Yusuf" {
		t.Errorf("students[1].Name = %q, want %q", students[1].Name, "Yusuf")
	}
	if students[2].Name != "Khan" {
		t.Errorf("students[2].Name = %q, want %q", students[2].Name, "Khan")
	}
}

func TestReadStudentsXLSX_headerOnly(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Name", "Email"},
	})

	students, err := ReadStudentsXLSX(buf)
	if err != nil {
		t.Fatalf("ReadStudentsXLSX() failed, %v", err)
	}
	if len(students) != 0 {
		t.Errorf("students = %d, want 0", len(students))
	}
}

func TestWriteStudentsXLSX_roundTrip(t *testing.T) {
	roster := []Student{
		{Name: "Fatima", Email: "fatima@test.cd", ParentEmail: "mom@test.cd", Progress: 80},
		{Name: "Yusuf", Email: "yusuf@test.cd", Progress: 40},
	}

	buf, err := WriteStudentsXLSX(roster)
	if err != nil {
		t.Fatalf("WriteStudentsXLSX() failed, %v", err)
	}

	students, err := ReadStudentsXLSX(buf)
	if err != nil {
		t.Fatalf("ReadStudentsXLSX() failed, %v", err)
	}
	if len(students) != len(roster) {
		t.Fatalf("students = %d, want %d", len(students), len(roster))
	}
	for i, s := range students {
		if s.Name != roster[i].Name || s.Email != roster[i].Email || s.Progress != roster[i].Progress {
			t.Errorf("students[%d] = %+v, want %+v", i, s, roster[i])
		}
	}
}
