package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careervisualizer/backend/internal/models"
)

type careerDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Career     string    `bson:"career"`
	RecordedOn string    `bson:"recorded_on"`
	CreatedAt  time.Time `bson:"created_at"`
}

// MongoStore appends career records to a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("career_records")}
}

func (s *MongoStore) AppendRow(ctx context.Context, rec models.CareerRecord) error {
	doc := careerDoc{
		ID:         uuid.NewString(),
		Name:       rec.Name,
		Career:     rec.Career,
		RecordedOn: rec.Date,
		CreatedAt:  time.Now(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}
