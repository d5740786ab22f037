package emails

import (
	"context"
	"sync"
	"time"

	"go-dutyleave/internal/config"
	"go-dutyleave/internal/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, email *Email) error
	UpdateStatus(ctx context.Context, id string, status EmailStatus, errorMsg string) error
}

func NewRepository(cfg *config.Config, mongodb *database.MongodbDB) Repository {
	if cfg.UseMemoryStorage() {
		return &MemoryRepository{emails: make(map[string]*Email)}
	}
	return &MongoRepository{Collection: mongodb.DB.Collection("emails")}
}

type MongoRepository struct {
	Collection *mongo.Collection
}

func (r *MongoRepository) Create(ctx context.Context, email *Email) error {
	if email.ID == "" {
		email.ID = primitive.NewObjectID().Hex()
	}
	email.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, email)
	return err
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, status EmailStatus, errorMsg string) error {
	set := bson.M{"status": status, "errorMessage": errorMsg}
	if status == EmailSent {
		set["sentAt"] = time.Now()
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

type MemoryRepository struct {
	mu     sync.RWMutex
	emails map[string]*Email
}

func (r *MemoryRepository) Create(ctx context.Context, email *Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if email.ID == "" {
		email.ID = uuid.NewString()
	}
	email.CreatedAt = time.Now()
	cp := *email
	r.emails[email.ID] = &cp
	return nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status EmailStatus, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.emails[id]; ok {
		e.Status = status
		e.ErrorMsg = errorMsg
		if status == EmailSent {
			now := time.Now()
			e.SentAt = &now
		}
	}
	return nil
}
