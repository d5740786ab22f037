package application

import (
	"context"
	"errors"
	"testing"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/features/student"

	"go.uber.org/zap"
)

type noopNotifier struct {
	requested int
	decided   int
}

func (n *noopNotifier) ApprovalRequested(ctx context.Context, app *Application, stage common_models.StageRole) {
	n.requested++
}

func (n *noopNotifier) DecisionRecorded(ctx context.Context, app *Application, stage common_models.StageRole, status common_models.ApprovalStatus) {
	n.decided++
}

type fixture struct {
	svc         ApplicationService
	studentRepo student.StudentRepository
	notifier    *noopNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notifier := &noopNotifier{}
	studentRepo := student.NewMemoryRepository()
	svc := NewApplicationService(NewMemoryRepository(), studentRepo, notifier, zap.NewNop())
	return &fixture{svc: svc, studentRepo: studentRepo, notifier: notifier}
}

func (f *fixture) addStudent(t *testing.T, name, rollNo, dept string, attendance float64) common_models.Actor {
	t.Helper()
	st := &student.Student{
		Name:                 name,
		RollNo:               rollNo,
		Email:                rollNo + "@institute.edu",
		Department:           dept,
		Division:             "A",
		AttendancePercentage: attendance,
	}
	if err := f.studentRepo.Create(context.Background(), st); err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return common_models.Actor{
		ID:         st.ID,
		Name:       st.Name,
		Role:       common_models.RoleStudent,
		Department: st.Department,
	}
}

func approver(stage common_models.StageRole, dept string) common_models.Actor {
	return common_models.Actor{
		ID:         "fac-" + string(stage),
		Role:       common_models.RoleFaculty,
		Stage:      stage,
		Department: dept,
	}
}

func submitInput(days int) SubmitInput {
	return SubmitInput{
		NumberOfDays: days,
		Reason:       "Hackathon",
		DateFrom:     "2025-03-10",
		DateTo:       "2025-03-12",
	}
}

func TestSubmitEligibilityGate(t *testing.T) {
	f := newFixture(t)

	below := f.addStudent(t, "Low Attendance", "CS01", "Computer Science", 74.9)
	if _, err := f.svc.Submit(context.Background(), below, submitInput(1)); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("err = %v, want ErrNotEligible below 75%%", err)
	}

	atCutoff := f.addStudent(t, "At Cutoff", "CS02", "Computer Science", 75)
	if _, err := f.svc.Submit(context.Background(), atCutoff, submitInput(1)); err != nil {
		t.Fatalf("exactly 75%% must be eligible, got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Rahul", "CS03", "Computer Science", 90)

	tests := []struct {
		name  string
		input SubmitInput
	}{
		{"zero days", SubmitInput{NumberOfDays: 0, Reason: "x", DateFrom: "a", DateTo: "b"}},
		{"missing reason", SubmitInput{NumberOfDays: 1, DateFrom: "a", DateTo: "b"}},
		{"missing dates", SubmitInput{NumberOfDays: 1, Reason: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Submit(context.Background(), actor, tt.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSubmitRejectsFaculty(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Submit(context.Background(), approver(common_models.StageCC, "cs"), submitInput(1)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for faculty actor", err)
	}
}

func TestSubmitSnapshotsStudentAndNotifiesChain(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Sneha", "CS04", "  Computer   Science ", 91)

	app, err := f.svc.Submit(context.Background(), actor, submitInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.Department != "computer science" {
		t.Errorf("department = %q, want normalized", app.Department)
	}
	if app.StudentName != "Sneha" || app.RollNo != "CS04" {
		t.Errorf("requester attributes not snapshotted: %+v", app)
	}
	if app.OverallStatus != common_models.StatusPending {
		t.Errorf("overallStatus = %s, want pending", app.OverallStatus)
	}
	if f.notifier.requested != 3 {
		t.Errorf("requested notifications = %d, want one per required stage", f.notifier.requested)
	}
}

func TestFullApprovalChainThreeDays(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Amit", "ME01", "Mechanical", 88)

	app, err := f.svc.Submit(context.Background(), actor, submitInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decide := func(stage common_models.StageRole, action DecisionAction) (*Application, error) {
		return f.svc.Decide(context.Background(), approver(stage, "Mechanical"), DecisionInput{
			ApplicationID: app.ID,
			Action:        action,
		})
	}

	got, err := decide(common_models.StageCC, ActionApprove)
	if err != nil {
		t.Fatalf("CC approve: %v", err)
	}
	if got.OverallStatus != common_models.StatusPending {
		t.Errorf("overall after CC = %s, want pending", got.OverallStatus)
	}
	if f.notifier.decided != 0 {
		t.Errorf("terminal notification sent before terminal status")
	}

	if _, err := decide(common_models.StageHOD, ActionApprove); err != nil {
		t.Fatalf("HOD approve: %v", err)
	}

	got, err = decide(common_models.StageVP, ActionApprove)
	if err != nil {
		t.Fatalf("VP approve: %v", err)
	}
	if got.OverallStatus != common_models.StatusApproved {
		t.Errorf("overall after VP = %s, want approved", got.OverallStatus)
	}
	if f.notifier.decided != 1 {
		t.Errorf("decided notifications = %d, want 1 at terminal status", f.notifier.decided)
	}
}

func TestDecideSequencingAndApplicability(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Priya", "EC01", "Electronics", 78)

	twoDay, err := f.svc.Submit(context.Background(), actor, submitInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), approver(common_models.StageHOD, "Electronics"), DecisionInput{
		ApplicationID: twoDay.ID, Action: ActionApprove,
	}); !errors.Is(err, ErrPriorStageNotApproved) {
		t.Fatalf("err = %v, want ErrPriorStageNotApproved for HOD before CC", err)
	}

	if _, err := f.svc.Decide(context.Background(), approver(common_models.StageVP, ""), DecisionInput{
		ApplicationID: twoDay.ID, Action: ActionApprove,
	}); !errors.Is(err, ErrStageNotRequired) {
		t.Fatalf("err = %v, want ErrStageNotRequired for VP on a two day application", err)
	}
}

func TestDecideRejectionIsTerminal(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Rahul", "CS05", "Computer Science", 82)

	app, err := f.svc.Submit(context.Background(), actor, submitInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), approver(common_models.StageCC, "Computer Science"), DecisionInput{
		ApplicationID: app.ID, Action: ActionApprove,
	}); err != nil {
		t.Fatalf("CC approve: %v", err)
	}

	got, err := f.svc.Decide(context.Background(), approver(common_models.StageHOD, "Computer Science"), DecisionInput{
		ApplicationID: app.ID, Action: ActionReject, Remarks: "clashes with internals",
	})
	if err != nil {
		t.Fatalf("HOD reject: %v", err)
	}
	if got.OverallStatus != common_models.StatusRejected {
		t.Errorf("overall = %s, want rejected", got.OverallStatus)
	}
	if got.HODRemarks == nil || *got.HODRemarks != "clashes with internals" {
		t.Errorf("hodRemarks = %v, want recorded", got.HODRemarks)
	}
	if f.notifier.decided != 1 {
		t.Errorf("decided notifications = %d, want 1 for terminal rejection", f.notifier.decided)
	}
}

func TestDecideUnknownApplication(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Decide(context.Background(), approver(common_models.StageCC, "cs"), DecisionInput{
		ApplicationID: "missing", Action: ActionApprove,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecideRejectsStudents(t *testing.T) {
	f := newFixture(t)
	actor := f.addStudent(t, "Rahul", "CS06", "Computer Science", 82)
	app, err := f.svc.Submit(context.Background(), actor, submitInput(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.Decide(context.Background(), actor, DecisionInput{
		ApplicationID: app.ID, Action: ActionApprove,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for student actor", err)
	}
}

func TestListPendingForScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cs := f.addStudent(t, "CS Student", "CS07", "Computer Science", 90)
	ec := f.addStudent(t, "EC Student", "EC02", "Electronics", 90)

	csApp, err := f.svc.Submit(ctx, cs, submitInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Submit(ctx, ec, submitInput(3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CC queue is department scoped, matching is case-insensitive.
	pending, err := f.svc.ListPendingFor(ctx, approver(common_models.StageCC, "COMPUTER SCIENCE"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != csApp.ID {
		t.Fatalf("CC pending = %d apps, want only own department", len(pending))
	}

	// Not yet in the HOD queue before CC approves.
	pending, err = f.svc.ListPendingFor(ctx, approver(common_models.StageHOD, "Computer Science"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("HOD pending = %d apps before CC approval, want 0", len(pending))
	}

	if _, err := f.svc.Decide(ctx, approver(common_models.StageCC, "Computer Science"), DecisionInput{
		ApplicationID: csApp.ID, Action: ActionApprove,
	}); err != nil {
		t.Fatalf("CC approve: %v", err)
	}

	pending, err = f.svc.ListPendingFor(ctx, approver(common_models.StageHOD, "Computer Science"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("HOD pending = %d apps after CC approval, want 1", len(pending))
	}

	// VP queue is institute-wide but only sees fully escalated applications.
	pending, err = f.svc.ListPendingFor(ctx, approver(common_models.StageVP, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("VP pending = %d apps before HOD approval, want 0", len(pending))
	}

	if _, err := f.svc.Decide(ctx, approver(common_models.StageHOD, "Computer Science"), DecisionInput{
		ApplicationID: csApp.ID, Action: ActionApprove,
	}); err != nil {
		t.Fatalf("HOD approve: %v", err)
	}

	pending, err = f.svc.ListPendingFor(ctx, approver(common_models.StageVP, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("VP pending = %d apps after HOD approval, want 1", len(pending))
	}
}

func TestListAllForDepartmentScopingAndStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cs := f.addStudent(t, "CS Student", "CS08", "Computer Science", 90)
	ec := f.addStudent(t, "EC Student", "EC03", "Electronics", 90)

	csApp, err := f.svc.Submit(ctx, cs, submitInput(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Submit(ctx, ec, submitInput(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.Decide(ctx, approver(common_models.StageCC, "Computer Science"), DecisionInput{
		ApplicationID: csApp.ID, Action: ActionApprove,
	}); err != nil {
		t.Fatalf("CC approve: %v", err)
	}

	all, err := f.svc.ListAllFor(ctx, approver(common_models.StageVP, ""), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("VP sees %d apps, want all departments", len(all))
	}

	scoped, err := f.svc.ListAllFor(ctx, approver(common_models.StageHOD, "Computer Science"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scoped) != 1 {
		t.Fatalf("HOD sees %d apps, want own department only", len(scoped))
	}

	approved, err := f.svc.ListAllFor(ctx, approver(common_models.StageVP, ""), common_models.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != csApp.ID {
		t.Fatalf("status filter returned %d apps, want the approved one", len(approved))
	}

	if _, err := f.svc.ListAllFor(ctx, approver(common_models.StageVP, ""), "bogus"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for bad status filter", err)
	}
}

func TestListForStudentReturnsOwnOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.addStudent(t, "A", "CS09", "Computer Science", 90)
	b := f.addStudent(t, "B", "CS10", "Computer Science", 90)

	if _, err := f.svc.Submit(ctx, a, submitInput(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Submit(ctx, a, submitInput(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Submit(ctx, b, submitInput(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mine, err := f.svc.ListForStudent(ctx, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("ListForStudent = %d apps, want 2", len(mine))
	}
	for _, app := range mine {
		if app.StudentID != a.ID {
			t.Errorf("got another student's application: %s", app.ID)
		}
	}

	if _, err := f.svc.ListForStudent(ctx, approver(common_models.StageCC, "cs")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for faculty", err)
	}
}
