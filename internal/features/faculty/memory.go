package faculty

import (
	"context"
	"sync"
	"time"

	common_models "go-dutyleave/internal/common/models"

	"github.com/google/uuid"
)

// MemoryRepository is the process-local backend. It satisfies the same
// contract as the Mongo implementation and backs tests and STORAGE=memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	faculty map[string]*Faculty
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{faculty: make(map[string]*Faculty)}
}

func (r *MemoryRepository) Create(ctx context.Context, f *Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.Department = common_models.NormalizeDepartment(f.Department)
	f.CreatedAt = time.Now()
	cp := *f
	r.faculty[f.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.faculty[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.faculty {
		if f.Email == email {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetByRole(ctx context.Context, role common_models.StageRole, department string) (*Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.faculty {
		if f.Role != role {
			continue
		}
		if department != "" && !common_models.SameDepartment(f.Department, department) {
			continue
		}
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByRole(ctx context.Context, role common_models.StageRole) ([]Faculty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []Faculty
	for _, f := range r.faculty {
		if f.Role == role {
			list = append(list, *f)
		}
	}
	return list, nil
}
