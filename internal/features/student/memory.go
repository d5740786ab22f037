package student

import (
	"context"
	"sort"
	"sync"
	"time"

	common_models "go-dutyleave/internal/common/models"

	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	students map[string]*Student
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{students: make(map[string]*Student)}
}

func (r *MemoryRepository) Create(ctx context.Context, s *Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Department = common_models.NormalizeDepartment(s.Department)
	s.CreatedAt = time.Now()
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetByRollNo(ctx context.Context, rollNo string) (*Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.RollNo == rollNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	students := make([]Student, 0, len(r.students))
	for _, s := range r.students {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].RollNo < students[j].RollNo
	})
	return students, nil
}

func (r *MemoryRepository) UpdateAttendance(ctx context.Context, rollNo string, percentage float64) (*Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.RollNo == rollNo {
			s.AttendancePercentage = percentage
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}
