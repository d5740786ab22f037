package application

import (
	"errors"
	"time"

	common_models "go-dutyleave/internal/common/models"
)

// Core error taxonomy. Controllers map these to HTTP codes with errors.Is;
// anything else is treated as a retryable storage failure.
var (
	ErrValidation            = errors.New("validation failed")
	ErrNotEligible           = errors.New("attendance below 75%, not eligible to apply")
	ErrNotFound              = errors.New("application not found")
	ErrForbidden             = errors.New("not allowed to act on this application")
	ErrStageNotRequired      = errors.New("this application does not require approval from this stage")
	ErrPriorStageNotApproved = errors.New("prior stage approval is required first")
)

// Application is one duty leave request. Requester attributes are
// snapshotted at submission time, not live-joined to the student record.
// OverallStatus is always derived from (NumberOfDays, CCStatus, HODStatus,
// VPStatus); it is never set independently.
type Application struct {
	ID                 string   `bson:"_id,omitempty" json:"id"`
	StudentID          string   `bson:"studentId" json:"studentId"`
	StudentName        string   `bson:"studentName" json:"studentName"`
	RollNo             string   `bson:"rollNo" json:"rollNo"`
	Department         string   `bson:"department" json:"department"`
	Division           string   `bson:"division" json:"division"`
	NumberOfDays       int      `bson:"numberOfDays" json:"numberOfDays"`
	Reason             string   `bson:"reason" json:"reason"`
	DateFrom           string   `bson:"dateFrom" json:"dateFrom"`
	DateTo             string   `bson:"dateTo" json:"dateTo"`
	AdditionalStudents []string `bson:"additionalStudents" json:"additionalStudents"`

	CCStatus  common_models.ApprovalStatus `bson:"ccStatus" json:"ccStatus"`
	CCDate    *time.Time                   `bson:"ccDate" json:"ccDate"`
	CCRemarks *string                      `bson:"ccRemarks" json:"ccRemarks"`

	HODStatus  common_models.ApprovalStatus `bson:"hodStatus" json:"hodStatus"`
	HODDate    *time.Time                   `bson:"hodDate" json:"hodDate"`
	HODRemarks *string                      `bson:"hodRemarks" json:"hodRemarks"`

	VPStatus  common_models.ApprovalStatus `bson:"vpStatus" json:"vpStatus"`
	VPDate    *time.Time                   `bson:"vpDate" json:"vpDate"`
	VPRemarks *string                      `bson:"vpRemarks" json:"vpRemarks"`

	OverallStatus common_models.ApprovalStatus `bson:"overallStatus" json:"overallStatus"`
	CreatedAt     time.Time                    `bson:"createdAt" json:"createdAt"`
}

// StageStatus returns the recorded status of one approval stage.
func (a *Application) StageStatus(stage common_models.StageRole) common_models.ApprovalStatus {
	switch stage {
	case common_models.StageCC:
		return a.CCStatus
	case common_models.StageHOD:
		return a.HODStatus
	case common_models.StageVP:
		return a.VPStatus
	}
	return ""
}

func (a *Application) setStage(stage common_models.StageRole, status common_models.ApprovalStatus, at time.Time, remarks *string) {
	switch stage {
	case common_models.StageCC:
		a.CCStatus, a.CCDate, a.CCRemarks = status, &at, remarks
	case common_models.StageHOD:
		a.HODStatus, a.HODDate, a.HODRemarks = status, &at, remarks
	case common_models.StageVP:
		a.VPStatus, a.VPDate, a.VPRemarks = status, &at, remarks
	}
}

// SubmitInput is the request payload for creating an application.
type SubmitInput struct {
	NumberOfDays       int      `json:"numberOfDays" validate:"required,min=1"`
	Reason             string   `json:"reason" validate:"required"`
	DateFrom           string   `json:"dateFrom" validate:"required"`
	DateTo             string   `json:"dateTo" validate:"required"`
	AdditionalStudents []string `json:"additionalStudents"`
}

// DecisionAction is what an approver asks for.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

// DecisionInput is the request payload for recording a stage decision.
type DecisionInput struct {
	ApplicationID string         `json:"applicationId" validate:"required"`
	Action        DecisionAction `json:"action" validate:"required,oneof=approve reject"`
	Remarks       string         `json:"remarks"`
}
