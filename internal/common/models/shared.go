package models

import (
	"strings"
	"time"
)

// ApprovalStatus is the status of a single approval stage and of the
// application as a whole.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// StageRole identifies a faculty approver's position in the approval chain.
type StageRole string

const (
	StageCC  StageRole = "CC"  // Class Coordinator
	StageHOD StageRole = "HOD" // Head of Department
	StageVP  StageRole = "VP"  // Vice Principal
)

func (s StageRole) Valid() bool {
	switch s {
	case StageCC, StageHOD, StageVP:
		return true
	}
	return false
}

// Label returns the display name used in notifications.
func (s StageRole) Label() string {
	switch s {
	case StageCC:
		return "Class Coordinator"
	case StageHOD:
		return "Head of Department"
	case StageVP:
		return "Vice Principal"
	}
	return string(s)
}

// ActorRole distinguishes the two kinds of authenticated users.
type ActorRole string

const (
	RoleStudent ActorRole = "student"
	RoleFaculty ActorRole = "faculty"
)

// Actor is the typed identity passed by value into every core operation.
// Stage and Department are only meaningful for faculty actors; department
// scoping applies to CC and HOD, never to VP.
type Actor struct {
	ID         string
	Name       string
	Email      string
	Role       ActorRole
	Stage      StageRole
	Department string
}

func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsFaculty() bool { return a.Role == RoleFaculty }

// NormalizeDepartment canonicalizes a department name so that matching is
// insensitive to case and surrounding whitespace. All persisted department
// values and all scope comparisons go through this.
func NormalizeDepartment(dept string) string {
	return strings.ToLower(strings.Join(strings.Fields(dept), " "))
}

// SameDepartment reports whether two department names refer to the same
// department after normalization.
func SameDepartment(a, b string) bool {
	return NormalizeDepartment(a) == NormalizeDepartment(b)
}

// Log is the shape of entries written to the logs collection by the async
// zap writer.
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Level        string    `bson:"level" json:"level"`
	Function     string    `bson:"function,omitempty" json:"function,omitempty"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
