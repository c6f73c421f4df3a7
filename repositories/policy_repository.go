package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentora/rentora_backend/models"
)

// ErrNotFound is returned when a referenced property, agency or lease does
// not exist.
var ErrNotFound = errors.New("resource not found")

// PolicySource provides the read-only configuration the commission engine
// evaluates against.
type PolicySource interface {
	PropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	AgencyByID(ctx context.Context, id primitive.ObjectID) (*models.Agency, error)
	LeaseByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error)
}

const policyCacheTTL = 10 * time.Minute

// PolicyRepository reads policy configuration from MongoDB through a Redis
// read-through cache. Cache failures are logged and ignored; Mongo stays the
// source of truth.
type PolicyRepository struct {
	db    *mongo.Database
	cache *redis.Client
}

func NewPolicyRepository(db *mongo.Database, cache *redis.Client) *PolicyRepository {
	return &PolicyRepository{db: db, cache: cache}
}

func (r *PolicyRepository) PropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	if err := r.findCached(ctx, "properties", "policy:property:"+id.Hex(), id, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PolicyRepository) AgencyByID(ctx context.Context, id primitive.ObjectID) (*models.Agency, error) {
	var agency models.Agency
	if err := r.findCached(ctx, "agencies", "policy:agency:"+id.Hex(), id, &agency); err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *PolicyRepository) LeaseByID(ctx context.Context, id primitive.ObjectID) (*models.Lease, error) {
	var lease models.Lease
	if err := r.findCached(ctx, "leases", "policy:lease:"+id.Hex(), id, &lease); err != nil {
		return nil, err
	}
	return &lease, nil
}

// InvalidateProperty drops the cached policy for a property after its
// commission policy changes.
func (r *PolicyRepository) InvalidateProperty(ctx context.Context, id primitive.ObjectID) {
	r.invalidate(ctx, "policy:property:"+id.Hex())
}

// InvalidateAgency drops the cached platform-fee policy for an agency.
func (r *PolicyRepository) InvalidateAgency(ctx context.Context, id primitive.ObjectID) {
	r.invalidate(ctx, "policy:agency:"+id.Hex())
}

// InvalidateLease drops the cached split policy for a lease.
func (r *PolicyRepository) InvalidateLease(ctx context.Context, id primitive.ObjectID) {
	r.invalidate(ctx, "policy:lease:"+id.Hex())
}

func (r *PolicyRepository) invalidate(ctx context.Context, key string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to invalidate policy cache key %s: %v", key, err)
	}
}

func (r *PolicyRepository) findCached(ctx context.Context, collection, key string, id primitive.ObjectID, out interface{}) error {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(cached), out); jsonErr == nil {
				return nil
			}
			// Bad cache entry; fall through to Mongo.
			r.invalidate(ctx, key)
		} else if err != redis.Nil {
			log.Printf("Policy cache read failed for %s: %v", key, err)
		}
	}

	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if r.cache != nil {
		if data, jsonErr := json.Marshal(out); jsonErr == nil {
			if err := r.cache.Set(ctx, key, data, policyCacheTTL).Err(); err != nil {
				log.Printf("Policy cache write failed for %s: %v", key, err)
			}
		}
	}
	return nil
}
