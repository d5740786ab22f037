package student

import (
	"context"
	"strings"
	"testing"

	common_models "go-dutyleave/internal/common/models"

	"go.uber.org/zap"
)

func newTestService() StudentService {
	return NewStudentService(NewMemoryRepository(), zap.NewNop())
}

func validRow(rollNo string) ImportRow {
	return ImportRow{
		Name:                 "Test Student",
		Email:                strings.ToLower(rollNo) + "@institute.edu",
		Password:             "password123",
		Department:           "Computer Science",
		Division:             "A",
		RollNo:               rollNo,
		AttendancePercentage: 80,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService()

	st, err := svc.Register(context.Background(), validRow("CS01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Password == "password123" {
		t.Error("password stored in plain text")
	}
	if st.ID == "" {
		t.Error("no ID assigned")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		mutate func(*ImportRow)
	}{
		{"missing name", func(r *ImportRow) { r.Name = "" }},
		{"missing password", func(r *ImportRow) { r.Password = "" }},
		{"bad email", func(r *ImportRow) { r.Email = "not-an-email" }},
		{"attendance above 100", func(r *ImportRow) { r.AttendancePercentage = 101 }},
		{"negative attendance", func(r *ImportRow) { r.AttendancePercentage = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow("CS02")
			tt.mutate(&row)
			if _, err := svc.Register(context.Background(), row); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRow("CS03")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dupEmail := validRow("CS04")
	dupEmail.Email = "cs03@institute.edu"
	if _, err := svc.Register(ctx, dupEmail); err == nil {
		t.Error("expected duplicate email error")
	}

	dupRoll := validRow("CS03")
	dupRoll.Email = "other@institute.edu"
	if _, err := svc.Register(ctx, dupRoll); err == nil {
		t.Error("expected duplicate roll number error")
	}
}

func TestBulkImportRowByRow(t *testing.T) {
	svc := newTestService()
	vp := common_models.Actor{Role: common_models.RoleFaculty, Stage: common_models.StageVP}

	bad := validRow("CS06")
	bad.Email = "broken"

	result, err := svc.BulkImport(context.Background(), vp, []ImportRow{
		validRow("CS05"), bad, validRow("CS07"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Successful) != 2 {
		t.Errorf("successful = %v, want 2 rows", result.Successful)
	}
	if len(result.Failed) != 1 || result.Failed[0].RollNo != "CS06" {
		t.Errorf("failed = %v, want the broken row only", result.Failed)
	}
}

func TestBulkImportDepartmentScope(t *testing.T) {
	svc := newTestService()
	cc := common_models.Actor{
		Role:       common_models.RoleFaculty,
		Stage:      common_models.StageCC,
		Department: "Electronics",
	}

	ownDept := validRow("EC01")
	ownDept.Department = "electronics"
	otherDept := validRow("CS08")

	result, err := svc.BulkImport(context.Background(), cc, []ImportRow{ownDept, otherDept})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Successful) != 1 || result.Successful[0] != "EC01" {
		t.Errorf("successful = %v, want own department row only", result.Successful)
	}
	if len(result.Failed) != 1 || result.Failed[0].RollNo != "CS08" {
		t.Errorf("failed = %v, want the cross department row", result.Failed)
	}
}

func TestUploadAttendance(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	vp := common_models.Actor{Role: common_models.RoleFaculty, Stage: common_models.StageVP}

	if _, err := svc.Register(ctx, validRow("CS09")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.UploadAttendance(ctx, vp, []AttendanceRow{
		{RollNo: "CS09", AttendancePercentage: 66},
		{RollNo: "GHOST", AttendancePercentage: 80},
		{RollNo: "CS09", AttendancePercentage: 150},
		{RollNo: "", AttendancePercentage: 50},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Successful) != 1 {
		t.Errorf("successful = %v, want the valid row only", result.Successful)
	}
	if len(result.Failed) != 3 {
		t.Errorf("failed = %v, want unknown roll, bad percentage and missing roll", result.Failed)
	}

	st, err := svc.GetByEmail(ctx, "cs09@institute.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.AttendancePercentage != 66 {
		t.Errorf("attendance = %v, want updated to 66", st.AttendancePercentage)
	}
}

func TestUploadAttendanceDepartmentScope(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRow("CS10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hod := common_models.Actor{
		Role:       common_models.RoleFaculty,
		Stage:      common_models.StageHOD,
		Department: "Electronics",
	}
	result, err := svc.UploadAttendance(ctx, hod, []AttendanceRow{
		{RollNo: "CS10", AttendancePercentage: 60},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Failed) != 1 {
		t.Errorf("failed = %v, want cross department row rejected", result.Failed)
	}
}
