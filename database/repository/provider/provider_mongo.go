package providerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servana/database"
	"servana/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo is the MongoDB-backed provider repository.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo returns a repository bound to the providers collection.
func NewMongoProviderRepo() *MongoProviderRepo {
	return &MongoProviderRepo{coll: database.Collection("providers")}
}

// ErrProviderNotFound is returned when no provider matches the given id.
var ErrProviderNotFound = errors.New("provider not found")

// Create inserts a new provider document.
func (repo *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, provider); err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	return nil
}

// GetByID retrieves a provider by its ID.
func (repo *MongoProviderRepo) GetByID(ctx context.Context, providerID string) (*models.Provider, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": providerID}).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("error fetching provider %s: %w", providerID, err)
	}
	return &provider, nil
}

// Update replaces an existing provider document.
func (repo *MongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": provider.ID}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, bson.M{"$set": provider})
	if err != nil {
		return fmt.Errorf("error updating provider %s: %w", provider.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProviderNotFound
	}
	return nil
}
