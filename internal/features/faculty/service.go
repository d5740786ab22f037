package faculty

import (
	"context"
	"errors"

	common_models "go-dutyleave/internal/common/models"

	"golang.org/x/crypto/bcrypt"
)

type FacultyService interface {
	Register(ctx context.Context, f *Faculty, password string) error
	GetByEmail(ctx context.Context, email string) (*Faculty, error)
	GetByRole(ctx context.Context, role common_models.StageRole, department string) (*Faculty, error)
	ListByRole(ctx context.Context, role common_models.StageRole) ([]Faculty, error)
}

type FacultyServiceImpl struct {
	Repo FacultyRepository
}

func NewFacultyService(repo FacultyRepository) FacultyService {
	return &FacultyServiceImpl{Repo: repo}
}

func (s *FacultyServiceImpl) Register(ctx context.Context, f *Faculty, password string) error {
	if !f.Role.Valid() {
		return errors.New("invalid stage role")
	}
	existing, err := s.Repo.GetByEmail(ctx, f.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	f.Password = string(hashed)

	return s.Repo.Create(ctx, f)
}

func (s *FacultyServiceImpl) GetByEmail(ctx context.Context, email string) (*Faculty, error) {
	return s.Repo.GetByEmail(ctx, email)
}

func (s *FacultyServiceImpl) GetByRole(ctx context.Context, role common_models.StageRole, department string) (*Faculty, error) {
	return s.Repo.GetByRole(ctx, role, department)
}

func (s *FacultyServiceImpl) ListByRole(ctx context.Context, role common_models.StageRole) ([]Faculty, error) {
	return s.Repo.ListByRole(ctx, role)
}
