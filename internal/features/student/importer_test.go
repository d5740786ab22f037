package student

import (
	"strings"
	"testing"
)

func TestParseImportFileCSV(t *testing.T) {
	csv := strings.Join([]string{
		"name,email,password,department,division,rollNo,attendancePercentage",
		"Rahul Sharma,rahul@institute.edu,password123,Computer Science,A,CS21B001,82",
		"Priya Patel,priya@institute.edu,password123,Electronics,B,EC21B015,78.5",
	}, "\n")

	rows, err := ParseImportFile(strings.NewReader(csv), "students.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	if rows[0].Name != "Rahul Sharma" || rows[0].RollNo != "CS21B001" || rows[0].AttendancePercentage != 82 {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].AttendancePercentage != 78.5 {
		t.Errorf("attendance = %v, want 78.5", rows[1].AttendancePercentage)
	}
}

func TestParseImportFileHeaderAliases(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Email,Password,Department,Division,roll_no,attendance",
		"Amit Kumar,amit@institute.edu,pw,Mechanical,A,ME21B042,88",
	}, "\n")

	rows, err := ParseImportFile(strings.NewReader(csv), "upload.CSV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].RollNo != "ME21B042" || rows[0].AttendancePercentage != 88 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestParseImportFileUnsupportedFormat(t *testing.T) {
	if _, err := ParseImportFile(strings.NewReader("x"), "students.pdf"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
