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

const spotCollection = "spots"

type MongoSpotRepository struct {
	coll *mongo.Collection
}

func NewSpotRepository(db *mongo.Database) *MongoSpotRepository {
	return &MongoSpotRepository{coll: db.Collection(spotCollection)}
}

type mongoSpot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"titulo"`
	Subtitle    string             `bson:"subtitulo,omitempty"`
	Description string             `bson:"descricao"`
	Icon        string             `bson:"icone,omitempty"`
	Image       string             `bson:"imagem,omitempty"`
	LinkText    string             `bson:"link_texto,omitempty"`
	LinkURL     string             `bson:"link_url,omitempty"`
	Type        string             `bson:"tipo_spot"`
	Settings    string             `bson:"configuracoes,omitempty"`
	Order       int                `bson:"ordem"`
	Active      bool               `bson:"ativo"`
	StartsAt    *int64             `bson:"data_inicio,omitempty"`
	EndsAt      *int64             `bson:"data_fim,omitempty"`
	CreatedAt   int64              `bson:"data_criacao"`
	UpdatedAt   int64              `bson:"data_atualizacao"`
}

func toMongoSpot(s *domain.Spot) mongoSpot {
	ms := mongoSpot{
		Title:       s.Title,
		Subtitle:    s.Subtitle,
		Description: s.Description,
		Icon:        s.Icon,
		Image:       s.Image,
		LinkText:    s.LinkText,
		LinkURL:     s.LinkURL,
		Type:        s.Type,
		Settings:    s.Settings,
		Order:       s.Order,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}
	if s.StartsAt != nil {
		ts := s.StartsAt.Unix()
		ms.StartsAt = &ts
	}
	if s.EndsAt != nil {
		ts := s.EndsAt.Unix()
		ms.EndsAt = &ts
	}
	return ms
}

func (ms mongoSpot) toDomain() *domain.Spot {
	s := &domain.Spot{
		ID:          ms.ID.Hex(),
		Title:       ms.Title,
		Subtitle:    ms.Subtitle,
		Description: ms.Description,
		Icon:        ms.Icon,
		Image:       ms.Image,
		LinkText:    ms.LinkText,
		LinkURL:     ms.LinkURL,
		Type:        ms.Type,
		Settings:    ms.Settings,
		Order:       ms.Order,
		Active:      ms.Active,
		CreatedAt:   unixToTime(ms.CreatedAt),
		UpdatedAt:   unixToTime(ms.UpdatedAt),
	}
	if ms.StartsAt != nil {
		t := unixToTime(*ms.StartsAt)
		s.StartsAt = &t
	}
	if ms.EndsAt != nil {
		t := unixToTime(*ms.EndsAt)
		s.EndsAt = &t
	}
	return s
}

func (r *MongoSpotRepository) Create(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	res, err := r.coll.InsertOne(ctx, toMongoSpot(spot))
	if err != nil {
		return nil, fmt.Errorf("insert spot: %w", err)
	}

	created := *spot
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoSpotRepository) FindByID(ctx context.Context, id string) (*domain.Spot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSpotNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoSpotRepository) FindByOrder(ctx context.Context, order int) (*domain.Spot, error) {
	return r.findOne(ctx, bson.M{"ordem": order})
}

func (r *MongoSpotRepository) findOne(ctx context.Context, filter bson.M) (*domain.Spot, error) {
	var ms mongoSpot
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSpotNotFound
		}
		return nil, fmt.Errorf("find spot: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *MongoSpotRepository) List(ctx context.Context) ([]domain.Spot, error) {
	sort := bson.D{{Key: "ordem", Value: 1}, {Key: "data_criacao", Value: -1}}
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}
	defer cur.Close(ctx)

	var spots []domain.Spot
	for cur.Next(ctx) {
		var ms mongoSpot
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode spot: %w", err)
		}
		spots = append(spots, *ms.toDomain())
	}
	return spots, cur.Err()
}

func (r *MongoSpotRepository) Update(ctx context.Context, spot *domain.Spot) (*domain.Spot, error) {
	oid, err := primitive.ObjectIDFromHex(spot.ID)
	if err != nil {
		return nil, domain.ErrSpotNotFound
	}

	doc := toMongoSpot(spot)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update spot: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSpotNotFound
	}
	return spot, nil
}

func (r *MongoSpotRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSpotNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete spot: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSpotNotFound
	}
	return nil
}

func (r *MongoSpotRepository) SetOrder(ctx context.Context, id string, order int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSpotNotFound
	}

	update := bson.M{"$set": bson.M{
		"ordem":            order,
		"data_atualizacao": time.Now().UTC().Unix(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set spot order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSpotNotFound
	}
	return nil
}
