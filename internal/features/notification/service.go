package notification

import (
	"context"
	"fmt"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/config"
	emails "go-dutyleave/internal/email"
	"go-dutyleave/internal/features/application"
	"go-dutyleave/internal/features/faculty"
	"go-dutyleave/internal/features/student"

	"go.uber.org/zap"
)

// NotificationService mails approvers when a new application needs their
// decision and students when their application reaches a terminal status.
// Everything here is best-effort: lookup or send failures are logged and
// swallowed, never propagated to the transition that triggered them.
type NotificationService struct {
	FacultyRepo faculty.FacultyRepository
	StudentRepo student.StudentRepository
	Emails      *emails.Service
	Logger      *zap.Logger
	appURL      string
}

func NewNotificationService(
	facultyRepo faculty.FacultyRepository,
	studentRepo student.StudentRepository,
	emailService *emails.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		FacultyRepo: facultyRepo,
		StudentRepo: studentRepo,
		Emails:      emailService,
		Logger:      logger,
		appURL:      cfg.AppURL,
	}
}

// compile-time check that the core contract is satisfied
var _ application.Notifier = (*NotificationService)(nil)

func (s *NotificationService) ApprovalRequested(ctx context.Context, app *application.Application, stage common_models.StageRole) {
	department := app.Department
	if stage == common_models.StageVP {
		department = "" // VP is institute-wide
	}

	approver, err := s.FacultyRepo.GetByRole(ctx, stage, department)
	if err != nil {
		s.Logger.Warn("approver lookup failed", zap.String("stage", string(stage)), zap.Error(err))
		return
	}
	if approver == nil {
		s.Logger.Warn("no approver found for stage",
			zap.String("stage", string(stage)), zap.String("department", app.Department))
		return
	}

	subject := fmt.Sprintf("New Duty Leave Application - %s", app.StudentName)
	body := fmt.Sprintf(`
		<h2>New Duty Leave Application Requires Your Approval</h2>
		<p><strong>Student Name:</strong> %s</p>
		<p><strong>Number of Days:</strong> %d</p>
		<p><strong>Reason:</strong> %s</p>
		<p><strong>Your Role:</strong> %s</p>
		<br/>
		<p>Please log in to the Duty Leave Management System to review and approve/reject this application.</p>
		<p><a href="%s">Go to Dashboard</a></p>
	`, app.StudentName, app.NumberOfDays, app.Reason, stage.Label(), s.appURL)

	if err := s.Emails.Send(ctx, []string{approver.Email}, subject, body); err != nil {
		s.Logger.Warn("failed to queue approval email",
			zap.String("to", approver.Email), zap.Error(err))
	}
}

func (s *NotificationService) DecisionRecorded(ctx context.Context, app *application.Application, stage common_models.StageRole, status common_models.ApprovalStatus) {
	st, err := s.StudentRepo.GetByID(ctx, app.StudentID)
	if err != nil || st == nil {
		s.Logger.Warn("student lookup failed for decision notification",
			zap.String("studentId", app.StudentID), zap.Error(err))
		return
	}

	subject := fmt.Sprintf("Duty Leave Application %s", status)
	body := fmt.Sprintf(`
		<h2>Your Duty Leave Application Has Been %s</h2>
		<p><strong>Number of Days:</strong> %d</p>
		<p><strong>Reason:</strong> %s</p>
		<p><strong>Decided By:</strong> %s</p>
		<p><a href="%s">Go to Dashboard</a></p>
	`, status, app.NumberOfDays, app.Reason, stage.Label(), s.appURL)

	if err := s.Emails.Send(ctx, []string{st.Email}, subject, body); err != nil {
		s.Logger.Warn("failed to queue decision email",
			zap.String("to", st.Email), zap.Error(err))
	}
}
