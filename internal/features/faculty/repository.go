package faculty

import (
	"context"
	"time"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FacultyRepository interface {
	Create(ctx context.Context, f *Faculty) error
	GetByID(ctx context.Context, id string) (*Faculty, error)
	GetByEmail(ctx context.Context, email string) (*Faculty, error)
	// GetByRole returns the first approver with the given stage role. For CC
	// and HOD the department must match; pass "" for VP (institute-wide).
	GetByRole(ctx context.Context, role common_models.StageRole, department string) (*Faculty, error)
	ListByRole(ctx context.Context, role common_models.StageRole) ([]Faculty, error)
}

func NewFacultyRepository(cfg *config.Config, mongodb *database.MongodbDB) FacultyRepository {
	if cfg.UseMemoryStorage() {
		return NewMemoryRepository()
	}
	return &FacultyRepositoryImpl{
		Collection: mongodb.DB.Collection("faculty"),
	}
}

type FacultyRepositoryImpl struct {
	Collection *mongo.Collection
}

func (r *FacultyRepositoryImpl) Create(ctx context.Context, f *Faculty) error {
	if f.ID == "" {
		f.ID = primitive.NewObjectID().Hex()
	}
	f.Department = common_models.NormalizeDepartment(f.Department)
	f.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, f)
	return err
}

func (r *FacultyRepositoryImpl) GetByID(ctx context.Context, id string) (*Faculty, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *FacultyRepositoryImpl) GetByEmail(ctx context.Context, email string) (*Faculty, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *FacultyRepositoryImpl) GetByRole(ctx context.Context, role common_models.StageRole, department string) (*Faculty, error) {
	filter := bson.M{"role": role}
	if department != "" {
		filter["department"] = common_models.NormalizeDepartment(department)
	}
	return r.findOne(ctx, filter)
}

func (r *FacultyRepositoryImpl) ListByRole(ctx context.Context, role common_models.StageRole) ([]Faculty, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var list []Faculty
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *FacultyRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Faculty, error) {
	var f Faculty
	err := r.Collection.FindOne(ctx, filter).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}
