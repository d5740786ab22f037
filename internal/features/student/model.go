package student

import (
	"time"
)

type Student struct {
	ID                   string    `bson:"_id,omitempty" json:"id"`
	Name                 string    `bson:"name" json:"name"`
	RollNo               string    `bson:"rollNo" json:"rollNo"`
	Email                string    `bson:"email" json:"email"`
	Password             string    `bson:"password" json:"-"`
	Department           string    `bson:"department" json:"department"`
	Division             string    `bson:"division" json:"division"`
	AttendancePercentage float64   `bson:"attendancePercentage" json:"attendancePercentage"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
}

// MinimumAttendance is the eligibility threshold for submitting a duty
// leave application.
const MinimumAttendance = 75.0

// Eligible reports whether the student may submit a new application.
// Evaluated at submission time only; later attendance changes do not
// retroactively affect existing applications.
func (s *Student) Eligible() bool {
	return s.AttendancePercentage >= MinimumAttendance
}

// ImportRow is one student row from a bulk import payload or file.
type ImportRow struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	Department           string  `json:"department"`
	Division             string  `json:"division"`
	RollNo               string  `json:"rollNo"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// RowFailure records why one row of a bulk operation was skipped.
type RowFailure struct {
	RollNo string `json:"rollNo"`
	Reason string `json:"reason"`
}

// BulkResult is the per-row outcome report of a bulk operation.
type BulkResult struct {
	Successful []string     `json:"successful"`
	Failed     []RowFailure `json:"failed"`
}

func (r *BulkResult) ok(rollNo string) {
	r.Successful = append(r.Successful, rollNo)
}

func (r *BulkResult) fail(rollNo, reason string) {
	if rollNo == "" {
		rollNo = "unknown"
	}
	r.Failed = append(r.Failed, RowFailure{RollNo: rollNo, Reason: reason})
}

// AttendanceRow is one row of a bulk attendance upload.
type AttendanceRow struct {
	RollNo               string  `json:"rollNo"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}
