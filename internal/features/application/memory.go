package application

import (
	"context"
	"sort"
	"sync"
	"time"

	common_models "go-dutyleave/internal/common/models"

	"github.com/google/uuid"
)

// MemoryRepository keeps applications in a process-local map. It implements
// the same contract as the Mongo backend and shares the same transition
// function, so behavior never diverges between the two.
type MemoryRepository struct {
	mu   sync.RWMutex
	apps map[string]*Application
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{apps: make(map[string]*Application)}
}

func (r *MemoryRepository) Create(ctx context.Context, app *Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now()
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if app, ok := r.apps[id]; ok {
		cp := *app
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) Update(ctx context.Context, app *Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *MemoryRepository) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return r.filter(func(app *Application) bool {
		return app.StudentID == studentID
	}), nil
}

func (r *MemoryRepository) ListPendingForCC(ctx context.Context, department string) ([]Application, error) {
	return r.filter(func(app *Application) bool {
		return common_models.SameDepartment(app.Department, department) &&
			app.CCStatus == common_models.StatusPending &&
			app.OverallStatus == common_models.StatusPending
	}), nil
}

func (r *MemoryRepository) ListPendingForHOD(ctx context.Context, department string) ([]Application, error) {
	return r.filter(func(app *Application) bool {
		return common_models.SameDepartment(app.Department, department) &&
			app.NumberOfDays >= 2 &&
			app.CCStatus == common_models.StatusApproved &&
			app.HODStatus == common_models.StatusPending &&
			app.OverallStatus == common_models.StatusPending
	}), nil
}

func (r *MemoryRepository) ListPendingForVP(ctx context.Context) ([]Application, error) {
	return r.filter(func(app *Application) bool {
		return app.NumberOfDays > 2 &&
			app.CCStatus == common_models.StatusApproved &&
			app.HODStatus == common_models.StatusApproved &&
			app.VPStatus == common_models.StatusPending &&
			app.OverallStatus == common_models.StatusPending
	}), nil
}

func (r *MemoryRepository) ListByStatus(ctx context.Context, status common_models.ApprovalStatus) ([]Application, error) {
	return r.filter(func(app *Application) bool {
		return app.OverallStatus == status
	}), nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]Application, error) {
	return r.filter(func(app *Application) bool { return true }), nil
}

func (r *MemoryRepository) filter(keep func(*Application) bool) []Application {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var apps []Application
	for _, app := range r.apps {
		if keep(app) {
			apps = append(apps, *app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps
}
