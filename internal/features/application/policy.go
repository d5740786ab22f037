package application

import (
	"time"

	common_models "go-dutyleave/internal/common/models"
)

// RequiredStages maps an application's duration to the ordered approval
// chain. This table is the single source of truth for routing: one day needs
// only the Class Coordinator, two days add the Head of Department, three or
// more add the Vice Principal.
func RequiredStages(numberOfDays int) []common_models.StageRole {
	switch {
	case numberOfDays <= 1:
		return []common_models.StageRole{common_models.StageCC}
	case numberOfDays == 2:
		return []common_models.StageRole{common_models.StageCC, common_models.StageHOD}
	default:
		return []common_models.StageRole{common_models.StageCC, common_models.StageHOD, common_models.StageVP}
	}
}

// StageRequired reports whether the given stage must act on an application
// of the given duration.
func StageRequired(stage common_models.StageRole, numberOfDays int) bool {
	switch stage {
	case common_models.StageCC:
		return true
	case common_models.StageHOD:
		return numberOfDays >= 2
	case common_models.StageVP:
		return numberOfDays > 2
	}
	return false
}

// FinalStage returns the stage whose approval finalizes an application of
// the given duration.
func FinalStage(numberOfDays int) common_models.StageRole {
	stages := RequiredStages(numberOfDays)
	return stages[len(stages)-1]
}

// stagesBefore returns the stages ranked before the given one (CC < HOD < VP).
func stagesBefore(stage common_models.StageRole) []common_models.StageRole {
	switch stage {
	case common_models.StageHOD:
		return []common_models.StageRole{common_models.StageCC}
	case common_models.StageVP:
		return []common_models.StageRole{common_models.StageCC, common_models.StageHOD}
	}
	return nil
}

// ApplyDecision records a stage decision on the application in place. It is
// the single transition function shared by every storage backend.
//
// Checks run in order: stage applicability against the routing table, then
// sequencing (every prior stage must currently be approved). Once both pass
// the decision is recorded unconditionally, overwriting any earlier decision
// by the same stage, and the overall status is recomputed: a rejection at
// any stage is terminal; an approval finalizes the application only when the
// acting stage is the last required one.
func ApplyDecision(app *Application, stage common_models.StageRole, status common_models.ApprovalStatus, remarks string, now time.Time) error {
	if !StageRequired(stage, app.NumberOfDays) {
		return ErrStageNotRequired
	}

	for _, prior := range stagesBefore(stage) {
		if app.StageStatus(prior) != common_models.StatusApproved {
			return ErrPriorStageNotApproved
		}
	}

	var remarksPtr *string
	if remarks != "" {
		remarksPtr = &remarks
	}
	app.setStage(stage, status, now, remarksPtr)

	switch {
	case status == common_models.StatusRejected:
		app.OverallStatus = common_models.StatusRejected
	case stage == FinalStage(app.NumberOfDays):
		app.OverallStatus = common_models.StatusApproved
	default:
		app.OverallStatus = common_models.StatusPending
	}

	return nil
}
