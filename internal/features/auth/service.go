package auth

import (
	"context"
	"errors"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/features/faculty"
	"go-dutyleave/internal/features/student"
	"go-dutyleave/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserInfo is the sanitized identity returned alongside a token.
type UserInfo struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Role                 string  `json:"role"`
	FacultyType          string  `json:"facultyType,omitempty"`
	Department           string  `json:"department,omitempty"`
	Division             string  `json:"division,omitempty"`
	RollNo               string  `json:"rollNo,omitempty"`
	AttendancePercentage float64 `json:"attendancePercentage,omitempty"`
}

type AuthService interface {
	// Login authenticates a student or faculty account and issues a JWT.
	Login(ctx context.Context, email, password string, role common_models.ActorRole) (string, *UserInfo, error)
}

type AuthServiceImpl struct {
	StudentRepo student.StudentRepository
	FacultyRepo faculty.FacultyRepository
}

func NewAuthService(studentRepo student.StudentRepository, facultyRepo faculty.FacultyRepository) AuthService {
	return &AuthServiceImpl{
		StudentRepo: studentRepo,
		FacultyRepo: facultyRepo,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, role common_models.ActorRole) (string, *UserInfo, error) {
	switch role {
	case common_models.RoleFaculty:
		return s.loginFaculty(ctx, email, password)
	default:
		return s.loginStudent(ctx, email, password)
	}
}

func (s *AuthServiceImpl) loginStudent(ctx context.Context, email, password string) (string, *UserInfo, error) {
	st, err := s.StudentRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if st == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(st.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := utils.UserClaims{
		UserID:     st.ID,
		Name:       st.Name,
		Email:      st.Email,
		Role:       common_models.RoleStudent,
		Department: st.Department,
		RollNo:     st.RollNo,
		Division:   st.Division,
	}
	token, err := utils.GenerateToken(claims)
	if err != nil {
		return "", nil, err
	}

	return token, &UserInfo{
		ID:                   st.ID,
		Name:                 st.Name,
		Email:                st.Email,
		Role:                 string(common_models.RoleStudent),
		Department:           st.Department,
		Division:             st.Division,
		RollNo:               st.RollNo,
		AttendancePercentage: st.AttendancePercentage,
	}, nil
}

func (s *AuthServiceImpl) loginFaculty(ctx context.Context, email, password string) (string, *UserInfo, error) {
	fac, err := s.FacultyRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if fac == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(fac.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := utils.UserClaims{
		UserID:     fac.ID,
		Name:       fac.Name,
		Email:      fac.Email,
		Role:       common_models.RoleFaculty,
		Stage:      fac.Role,
		Department: fac.Department,
	}
	token, err := utils.GenerateToken(claims)
	if err != nil {
		return "", nil, err
	}

	return token, &UserInfo{
		ID:          fac.ID,
		Name:        fac.Name,
		Email:       fac.Email,
		Role:        string(common_models.RoleFaculty),
		FacultyType: string(fac.Role),
		Department:  fac.Department,
	}, nil
}
