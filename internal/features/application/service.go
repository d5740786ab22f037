package application

import (
	"context"
	"fmt"
	"time"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/features/student"

	"go.uber.org/zap"
)

// Notifier is the fire-and-forget notification collaborator. Implementations
// must never fail the triggering operation; errors are logged and swallowed
// on their side.
type Notifier interface {
	ApprovalRequested(ctx context.Context, app *Application, stage common_models.StageRole)
	DecisionRecorded(ctx context.Context, app *Application, stage common_models.StageRole, status common_models.ApprovalStatus)
}

type ApplicationService interface {
	Submit(ctx context.Context, actor common_models.Actor, input SubmitInput) (*Application, error)
	ListForStudent(ctx context.Context, actor common_models.Actor) ([]Application, error)
	ListPendingFor(ctx context.Context, actor common_models.Actor) ([]Application, error)
	ListAllFor(ctx context.Context, actor common_models.Actor, status common_models.ApprovalStatus) ([]Application, error)
	Decide(ctx context.Context, actor common_models.Actor, input DecisionInput) (*Application, error)
}

type ApplicationServiceImpl struct {
	Repo        ApplicationRepository
	StudentRepo student.StudentRepository
	Notifier    Notifier
	Logger      *zap.Logger

	locks *keyedMutex
}

func NewApplicationService(
	repo ApplicationRepository,
	studentRepo student.StudentRepository,
	notifier Notifier,
	logger *zap.Logger,
) ApplicationService {
	return &ApplicationServiceImpl{
		Repo:        repo,
		StudentRepo: studentRepo,
		Notifier:    notifier,
		Logger:      logger,
		locks:       newKeyedMutex(),
	}
}

func (s *ApplicationServiceImpl) Submit(ctx context.Context, actor common_models.Actor, input SubmitInput) (*Application, error) {
	if !actor.IsStudent() {
		return nil, fmt.Errorf("%w: only students can apply", ErrForbidden)
	}

	if input.NumberOfDays < 1 {
		return nil, fmt.Errorf("%w: numberOfDays must be at least 1", ErrValidation)
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if input.DateFrom == "" || input.DateTo == "" {
		return nil, fmt.Errorf("%w: dateFrom and dateTo are required", ErrValidation)
	}

	st, err := s.StudentRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: student record not found", ErrValidation)
	}

	// Eligibility gate, checked once against the attendance value at this
	// instant. Later attendance changes do not touch existing applications.
	if !st.Eligible() {
		return nil, ErrNotEligible
	}

	app := &Application{
		StudentID:          st.ID,
		StudentName:        st.Name,
		RollNo:             st.RollNo,
		Department:         common_models.NormalizeDepartment(st.Department),
		Division:           st.Division,
		NumberOfDays:       input.NumberOfDays,
		Reason:             input.Reason,
		DateFrom:           input.DateFrom,
		DateTo:             input.DateTo,
		AdditionalStudents: input.AdditionalStudents,
		CCStatus:           common_models.StatusPending,
		HODStatus:          common_models.StatusPending,
		VPStatus:           common_models.StatusPending,
		OverallStatus:      common_models.StatusPending,
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.Logger.Info("application submitted",
		zap.String("id", app.ID),
		zap.String("student", app.StudentID),
		zap.Int("days", app.NumberOfDays))

	for _, stage := range RequiredStages(app.NumberOfDays) {
		s.Notifier.ApprovalRequested(ctx, app, stage)
	}

	return app, nil
}

func (s *ApplicationServiceImpl) ListForStudent(ctx context.Context, actor common_models.Actor) ([]Application, error) {
	if !actor.IsStudent() {
		return nil, fmt.Errorf("%w: only students can access this", ErrForbidden)
	}
	return s.Repo.ListByStudent(ctx, actor.ID)
}

func (s *ApplicationServiceImpl) ListPendingFor(ctx context.Context, actor common_models.Actor) ([]Application, error) {
	if !actor.IsFaculty() {
		return nil, fmt.Errorf("%w: only faculty can access this", ErrForbidden)
	}

	switch actor.Stage {
	case common_models.StageCC:
		return s.Repo.ListPendingForCC(ctx, actor.Department)
	case common_models.StageHOD:
		return s.Repo.ListPendingForHOD(ctx, actor.Department)
	case common_models.StageVP:
		return s.Repo.ListPendingForVP(ctx)
	}
	return nil, fmt.Errorf("%w: unknown stage role", ErrForbidden)
}

func (s *ApplicationServiceImpl) ListAllFor(ctx context.Context, actor common_models.Actor, status common_models.ApprovalStatus) ([]Application, error) {
	if !actor.IsFaculty() {
		return nil, fmt.Errorf("%w: only faculty can access this", ErrForbidden)
	}

	var apps []Application
	var err error
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status filter", ErrValidation)
		}
		apps, err = s.Repo.ListByStatus(ctx, status)
	} else {
		apps, err = s.Repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	// History is department-scoped for CC and HOD; VP sees all departments.
	if actor.Stage == common_models.StageCC || actor.Stage == common_models.StageHOD {
		scoped := make([]Application, 0, len(apps))
		for _, app := range apps {
			if common_models.SameDepartment(app.Department, actor.Department) {
				scoped = append(scoped, app)
			}
		}
		apps = scoped
	}

	return apps, nil
}

func (s *ApplicationServiceImpl) Decide(ctx context.Context, actor common_models.Actor, input DecisionInput) (*Application, error) {
	if !actor.IsFaculty() || !actor.Stage.Valid() {
		return nil, fmt.Errorf("%w: only faculty can approve", ErrForbidden)
	}

	var status common_models.ApprovalStatus
	switch input.Action {
	case ActionApprove:
		status = common_models.StatusApproved
	case ActionReject:
		status = common_models.StatusRejected
	default:
		return nil, fmt.Errorf("%w: action must be approve or reject", ErrValidation)
	}

	// Serialize per application so two approvers cannot both pass the
	// sequencing check against a stale read.
	unlock := s.locks.Lock(input.ApplicationID)
	defer unlock()

	app, err := s.Repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	if err := ApplyDecision(app, actor.Stage, status, input.Remarks, time.Now()); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.Logger.Info("decision recorded",
		zap.String("id", app.ID),
		zap.String("stage", string(actor.Stage)),
		zap.String("decision", string(status)),
		zap.String("overall", string(app.OverallStatus)))

	if app.OverallStatus != common_models.StatusPending {
		s.Notifier.DecisionRecorded(ctx, app, actor.Stage, app.OverallStatus)
	}

	return app, nil
}
