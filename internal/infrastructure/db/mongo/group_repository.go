package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

const groupCollection = "grupos_acesso"

type MongoGroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{coll: db.Collection(groupCollection)}
}

type mongoGroup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"nome"`
	Description string             `bson:"descricao,omitempty"`
	Permissions []string           `bson:"permissoes"`
	Active      bool               `bson:"ativo"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (mg mongoGroup) toDomain() *domain.AccessGroup {
	perms := make([]domain.Permission, len(mg.Permissions))
	for i, p := range mg.Permissions {
		perms[i] = domain.Permission(p)
	}
	return &domain.AccessGroup{
		ID:          mg.ID.Hex(),
		Name:        mg.Name,
		Description: mg.Description,
		Permissions: perms,
		Active:      mg.Active,
		CreatedAt:   unixToTime(mg.CreatedAt),
		UpdatedAt:   unixToTime(mg.UpdatedAt),
	}
}

func permissionStrings(perms []domain.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func (r *MongoGroupRepository) Create(ctx context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error) {
	doc := mongoGroup{
		Name:        group.Name,
		Description: group.Description,
		Permissions: permissionStrings(group.Permissions),
		Active:      group.Active,
		CreatedAt:   group.CreatedAt.Unix(),
		UpdatedAt:   group.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGroupExists
		}
		return nil, fmt.Errorf("insert group: %w", err)
	}

	created := *group
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoGroupRepository) FindByID(ctx context.Context, id string) (*domain.AccessGroup, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoGroupRepository) FindByName(ctx context.Context, name string) (*domain.AccessGroup, error) {
	return r.findOne(ctx, bson.M{"nome": name})
}

func (r *MongoGroupRepository) findOne(ctx context.Context, filter bson.M) (*domain.AccessGroup, error) {
	var mg mongoGroup
	if err := r.coll.FindOne(ctx, filter).Decode(&mg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *MongoGroupRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]domain.AccessGroup, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}
	return r.findAll(ctx, bson.M{"_id": bson.M{"$in": oids}, "ativo": true})
}

func (r *MongoGroupRepository) List(ctx context.Context) ([]domain.AccessGroup, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *MongoGroupRepository) findAll(ctx context.Context, filter bson.M) ([]domain.AccessGroup, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "nome", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var groups []domain.AccessGroup
	for cur.Next(ctx) {
		var mg mongoGroup
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode group: %w", err)
		}
		groups = append(groups, *mg.toDomain())
	}
	return groups, cur.Err()
}

func (r *MongoGroupRepository) Update(ctx context.Context, group *domain.AccessGroup) (*domain.AccessGroup, error) {
	oid, err := primitive.ObjectIDFromHex(group.ID)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}

	update := bson.M{"$set": bson.M{
		"nome":       group.Name,
		"descricao":  group.Description,
		"permissoes": permissionStrings(group.Permissions),
		"ativo":      group.Active,
		"updated_at": group.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGroupExists
		}
		return nil, fmt.Errorf("update group: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

func (r *MongoGroupRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGroupNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

// Upsert re-syncs description and permissions of a seed group by name,
// creating it when absent. The active flag is only set on insert so an
// operator decision to deactivate a group survives restarts.
func (r *MongoGroupRepository) Upsert(ctx context.Context, group *domain.AccessGroup) error {
	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"descricao":  group.Description,
			"permissoes": permissionStrings(group.Permissions),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"nome":       group.Name,
			"ativo":      group.Active,
			"created_at": now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"nome": group.Name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert group %q: %w", group.Name, err)
	}
	return nil
}
