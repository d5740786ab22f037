package reminder

import (
	"context"
	"fmt"
	"strings"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/config"
	emails "go-dutyleave/internal/email"
	"go-dutyleave/internal/features/application"
	"go-dutyleave/internal/features/faculty"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ReminderService mails each approver a periodic digest of the applications
// still waiting on them. Disabled when no cron schedule is configured.
type ReminderService struct {
	AppRepo     application.ApplicationRepository
	FacultyRepo faculty.FacultyRepository
	Emails      *emails.Service
	Logger      *zap.Logger

	schedule  string
	scheduler *cron.Cron
}

func NewReminderService(
	cfg *config.Config,
	appRepo application.ApplicationRepository,
	facultyRepo faculty.FacultyRepository,
	emailService *emails.Service,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		AppRepo:     appRepo,
		FacultyRepo: facultyRepo,
		Emails:      emailService,
		Logger:      logger,
		schedule:    cfg.ReminderCron,
	}
}

func (s *ReminderService) Start() error {
	if s.schedule == "" {
		s.Logger.Info("pending approval reminders disabled, no schedule configured")
		return nil
	}
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid reminder cron expression %q: %w", s.schedule, err)
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() {
		if err := s.SendDigest(context.Background()); err != nil {
			s.Logger.Error("pending approval digest failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.scheduler.Start()
	s.Logger.Info("pending approval reminders scheduled", zap.String("schedule", s.schedule))
	return nil
}

func (s *ReminderService) Stop() {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
}

// SendDigest mails every approver with at least one application waiting on
// their stage. CC and HOD digests are scoped to the approver's department,
// the VP digest covers the whole institute.
func (s *ReminderService) SendDigest(ctx context.Context) error {
	for _, stage := range []common_models.StageRole{common_models.StageCC, common_models.StageHOD, common_models.StageVP} {
		approvers, err := s.FacultyRepo.ListByRole(ctx, stage)
		if err != nil {
			return err
		}

		for i := range approvers {
			approver := &approvers[i]

			pending, err := s.pendingFor(ctx, stage, approver.Department)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				continue
			}

			subject := fmt.Sprintf("Reminder: %d duty leave application(s) awaiting your approval", len(pending))
			if err := s.Emails.Send(ctx, []string{approver.Email}, subject, digestBody(approver.Name, stage, pending)); err != nil {
				s.Logger.Warn("failed to queue reminder email",
					zap.String("approver", approver.Email),
					zap.Error(err))
			}
		}
	}
	return nil
}

func (s *ReminderService) pendingFor(ctx context.Context, stage common_models.StageRole, department string) ([]application.Application, error) {
	switch stage {
	case common_models.StageCC:
		return s.AppRepo.ListPendingForCC(ctx, department)
	case common_models.StageHOD:
		return s.AppRepo.ListPendingForHOD(ctx, department)
	default:
		return s.AppRepo.ListPendingForVP(ctx)
	}
}

func digestBody(name string, stage common_models.StageRole, pending []application.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Pending Duty Leave Applications</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", name)
	fmt.Fprintf(&b, "<p>The following applications are awaiting your approval as %s:</p>", stage.Label())
	b.WriteString("<ul>")
	for _, app := range pending {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s, %s) requested %d day(s): %s</li>",
			app.StudentName, app.RollNo, app.Department, app.NumberOfDays, app.Reason)
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Please log in to the duty leave portal to review them.</p>")
	return b.String()
}

// RegisterHooks starts the reminder scheduler with the application lifecycle.
func RegisterHooks(lc fx.Lifecycle, s *ReminderService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
