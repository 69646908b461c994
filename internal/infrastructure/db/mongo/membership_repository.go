package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const membershipCollection = "usuario_grupos"

// MongoMembershipRepository stores the many-to-many user/group relation.
// A unique compound index on (usuario_id, grupo_id) enforces single linkage.
type MongoMembershipRepository struct {
	coll *mongo.Collection
}

func NewMembershipRepository(db *mongo.Database) *MongoMembershipRepository {
	return &MongoMembershipRepository{coll: db.Collection(membershipCollection)}
}

type mongoMembership struct {
	UserID    string `bson:"usuario_id"`
	GroupID   string `bson:"grupo_id"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoMembershipRepository) Add(ctx context.Context, userID, groupID string) error {
	doc := mongoMembership{
		UserID:    userID,
		GroupID:   groupID,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *MongoMembershipRepository) GroupIDsForUser(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.coll.Find(ctx, bson.M{"usuario_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var mm mongoMembership
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode membership: %w", err)
		}
		ids = append(ids, mm.GroupID)
	}
	return ids, cur.Err()
}

func (r *MongoMembershipRepository) RemoveByUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"usuario_id": userID}); err != nil {
		return fmt.Errorf("remove memberships by user: %w", err)
	}
	return nil
}

func (r *MongoMembershipRepository) RemoveByGroup(ctx context.Context, groupID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"grupo_id": groupID}); err != nil {
		return fmt.Errorf("remove memberships by group: %w", err)
	}
	return nil
}
