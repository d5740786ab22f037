package application

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

// ApplicationRepository is the minimal storage contract the state machine
// needs. Both the Mongo and the in-memory backend satisfy it; all transition
// logic lives outside, in ApplyDecision.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Update(ctx context.Context, app *Application) error
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListPendingForCC(ctx context.Context, department string) ([]Application, error)
	ListPendingForHOD(ctx context.Context, department string) ([]Application, error)
	ListPendingForVP(ctx context.Context) ([]Application, error)
	ListByStatus(ctx context.Context, status common_models.ApprovalStatus) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
}

func NewApplicationRepository(cfg *config.Config, mongodb *database.MongodbDB) ApplicationRepository {
	if cfg.UseMemoryStorage() {
		return NewMemoryRepository()
	}
	return &ApplicationRepositoryImpl{
		Collection: mongodb.DB.Collection("dl_applications"),
	}
}

type ApplicationRepositoryImpl struct {
	Collection *mongo.Collection
}

var newestFirst = options.Find().SetSort(bson.M{"createdAt": -1})

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *Application) error {
	if app.ID == "" {
		app.ID = primitive.NewObjectID().Hex()
	}
	app.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, app)
	return err
}

func (r *ApplicationRepositoryImpl) GetByID(ctx context.Context, id string) (*Application, error) {
	var app Application
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, app *Application) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": app.ID}, app)
	return err
}

func (r *ApplicationRepositoryImpl) ListByStudent(ctx context.Context, studentID string) ([]Application, error) {
	return r.find(ctx, bson.M{"studentId": studentID})
}

func (r *ApplicationRepositoryImpl) ListPendingForCC(ctx context.Context, department string) ([]Application, error) {
	return r.find(ctx, bson.M{
		"department":    common_models.NormalizeDepartment(department),
		"ccStatus":      common_models.StatusPending,
		"overallStatus": common_models.StatusPending,
	})
}

func (r *ApplicationRepositoryImpl) ListPendingForHOD(ctx context.Context, department string) ([]Application, error) {
	return r.find(ctx, bson.M{
		"department":    common_models.NormalizeDepartment(department),
		"numberOfDays":  bson.M{"$gte": 2},
		"ccStatus":      common_models.StatusApproved,
		"hodStatus":     common_models.StatusPending,
		"overallStatus": common_models.StatusPending,
	})
}

func (r *ApplicationRepositoryImpl) ListPendingForVP(ctx context.Context) ([]Application, error) {
	return r.find(ctx, bson.M{
		"numberOfDays":  bson.M{"$gt": 2},
		"ccStatus":      common_models.StatusApproved,
		"hodStatus":     common_models.StatusApproved,
		"vpStatus":      common_models.StatusPending,
		"overallStatus": common_models.StatusPending,
	})
}

func (r *ApplicationRepositoryImpl) ListByStatus(ctx context.Context, status common_models.ApprovalStatus) ([]Application, error) {
	return r.find(ctx, bson.M{"overallStatus": status})
}

func (r *ApplicationRepositoryImpl) ListAll(ctx context.Context) ([]Application, error) {
	return r.find(ctx, bson.M{})
}

func (r *ApplicationRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Application, error) {
	cursor, err := r.Collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var apps []Application
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// EnsureIndexes creates the query indexes used by the visibility layer.
func (r *ApplicationRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.M{"studentId": 1}},
		{Keys: bson.M{"department": 1}},
		{Keys: bson.M{"overallStatus": 1}},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, models)
	return err
}
