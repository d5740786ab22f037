package student

import (
	"context"
	"time"

	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StudentRepository interface {
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByRollNo(ctx context.Context, rollNo string) (*Student, error)
	List(ctx context.Context) ([]Student, error)
	UpdateAttendance(ctx context.Context, rollNo string, percentage float64) (*Student, error)
}

func NewStudentRepository(cfg *config.Config, mongodb *database.MongodbDB) StudentRepository {
	if cfg.UseMemoryStorage() {
		return NewMemoryRepository()
	}
	return &StudentRepositoryImpl{
		Collection: mongodb.DB.Collection("students"),
	}
}

type StudentRepositoryImpl struct {
	Collection *mongo.Collection
}

func (r *StudentRepositoryImpl) Create(ctx context.Context, s *Student) error {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	s.Department = common_models.NormalizeDepartment(s.Department)
	s.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, s)
	return err
}

func (r *StudentRepositoryImpl) GetByID(ctx context.Context, id string) (*Student, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *StudentRepositoryImpl) GetByEmail(ctx context.Context, email string) (*Student, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *StudentRepositoryImpl) GetByRollNo(ctx context.Context, rollNo string) (*Student, error) {
	return r.findOne(ctx, bson.M{"rollNo": rollNo})
}

func (r *StudentRepositoryImpl) List(ctx context.Context) ([]Student, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"rollNo": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var students []Student
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *StudentRepositoryImpl) UpdateAttendance(ctx context.Context, rollNo string, percentage float64) (*Student, error) {
	after := options.After
	var s Student
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{"rollNo": rollNo},
		bson.M{"$set": bson.M{"attendancePercentage": percentage}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Student, error) {
	var s Student
	err := r.Collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
