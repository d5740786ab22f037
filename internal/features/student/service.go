package student

import (
	"context"
	"errors"
	"math"
	"regexp"

	common_models "go-dutyleave/internal/common/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type StudentService interface {
	Register(ctx context.Context, row ImportRow) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	List(ctx context.Context) ([]Student, error)

	// BulkImport creates students row by row and reports per-row outcomes.
	// CC and HOD actors may only import students into their own department.
	BulkImport(ctx context.Context, actor common_models.Actor, rows []ImportRow) (*BulkResult, error)

	// UploadAttendance updates attendance percentages row by row. CC and HOD
	// actors may only touch students of their own department.
	UploadAttendance(ctx context.Context, actor common_models.Actor, rows []AttendanceRow) (*BulkResult, error)
}

type StudentServiceImpl struct {
	Repo   StudentRepository
	Logger *zap.Logger
}

func NewStudentService(repo StudentRepository, logger *zap.Logger) StudentService {
	return &StudentServiceImpl{Repo: repo, Logger: logger}
}

func (s *StudentServiceImpl) Register(ctx context.Context, row ImportRow) (*Student, error) {
	if row.Name == "" || row.Email == "" || row.Password == "" ||
		row.Department == "" || row.Division == "" || row.RollNo == "" {
		return nil, errors.New("missing required fields (name, email, password, department, division, rollNo)")
	}
	if !emailPattern.MatchString(row.Email) {
		return nil, errors.New("invalid email format")
	}
	if row.AttendancePercentage < 0 || row.AttendancePercentage > 100 {
		return nil, errors.New("invalid attendance percentage (must be 0-100)")
	}

	existing, err := s.Repo.GetByEmail(ctx, row.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already exists")
	}
	existing, err = s.Repo.GetByRollNo(ctx, row.RollNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("roll number already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	st := &Student{
		Name:                 row.Name,
		Email:                row.Email,
		Password:             string(hashed),
		Department:           row.Department,
		Division:             row.Division,
		RollNo:               row.RollNo,
		AttendancePercentage: row.AttendancePercentage,
	}
	if err := s.Repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StudentServiceImpl) GetByID(ctx context.Context, id string) (*Student, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *StudentServiceImpl) GetByEmail(ctx context.Context, email string) (*Student, error) {
	return s.Repo.GetByEmail(ctx, email)
}

func (s *StudentServiceImpl) List(ctx context.Context) ([]Student, error) {
	return s.Repo.List(ctx)
}

func (s *StudentServiceImpl) BulkImport(ctx context.Context, actor common_models.Actor, rows []ImportRow) (*BulkResult, error) {
	result := &BulkResult{Successful: []string{}, Failed: []RowFailure{}}

	for _, row := range rows {
		if departmentScoped(actor) && !common_models.SameDepartment(row.Department, actor.Department) {
			result.fail(row.RollNo, "Access denied: you can only import students for your own department")
			continue
		}

		if _, err := s.Register(ctx, row); err != nil {
			result.fail(row.RollNo, err.Error())
			continue
		}
		result.ok(row.RollNo)
	}

	s.Logger.Info("student bulk import completed",
		zap.Int("successful", len(result.Successful)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func (s *StudentServiceImpl) UploadAttendance(ctx context.Context, actor common_models.Actor, rows []AttendanceRow) (*BulkResult, error) {
	result := &BulkResult{Successful: []string{}, Failed: []RowFailure{}}

	for _, row := range rows {
		if row.RollNo == "" {
			result.fail(row.RollNo, "Missing rollNo")
			continue
		}
		if math.IsNaN(row.AttendancePercentage) || row.AttendancePercentage < 0 || row.AttendancePercentage > 100 {
			result.fail(row.RollNo, "Invalid attendance percentage (must be 0-100)")
			continue
		}

		st, err := s.Repo.GetByRollNo(ctx, row.RollNo)
		if err != nil {
			return nil, err
		}
		if st == nil {
			result.fail(row.RollNo, "Student not found")
			continue
		}

		if departmentScoped(actor) && !common_models.SameDepartment(st.Department, actor.Department) {
			result.fail(row.RollNo, "Access denied: student not in your department")
			continue
		}

		updated, err := s.Repo.UpdateAttendance(ctx, row.RollNo, row.AttendancePercentage)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			result.fail(row.RollNo, "Failed to update")
			continue
		}
		result.ok(row.RollNo)
	}

	return result, nil
}

// departmentScoped reports whether the actor's writes are limited to their
// own department. VP is institute-wide.
func departmentScoped(actor common_models.Actor) bool {
	return actor.Stage == common_models.StageCC || actor.Stage == common_models.StageHOD
}
