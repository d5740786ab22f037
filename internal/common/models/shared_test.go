package models

import "testing"

func TestNormalizeDepartment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Computer Science", "computer science"},
		{"  computer   science  ", "computer science"},
		{"COMPUTER SCIENCE", "computer science"},
		{"Electronics", "electronics"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDepartment(tt.in); got != tt.want {
			t.Errorf("NormalizeDepartment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameDepartment(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Computer Science", "computer science", true},
		{"Computer Science", " COMPUTER  SCIENCE ", true},
		{"Computer Science", "Electronics", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := SameDepartment(tt.a, tt.b); got != tt.want {
			t.Errorf("SameDepartment(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestApprovalStatusValid(t *testing.T) {
	for _, s := range []ApprovalStatus{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ApprovalStatus("done").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestStageRoleLabel(t *testing.T) {
	tests := []struct {
		stage StageRole
		want  string
	}{
		{StageCC, "Class Coordinator"},
		{StageHOD, "Head of Department"},
		{StageVP, "Vice Principal"},
	}

	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.want {
			t.Errorf("%s.Label() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
