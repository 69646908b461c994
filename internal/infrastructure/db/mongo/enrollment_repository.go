package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

const (
	enrollmentCollection = "inscricoes"
	statusCollection     = "status_historico"
)

type MongoEnrollmentRepository struct {
	coll   *mongo.Collection
	status *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *MongoEnrollmentRepository {
	return &MongoEnrollmentRepository{
		coll:   db.Collection(enrollmentCollection),
		status: db.Collection(statusCollection),
	}
}

type mongoEnrollment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Type           string             `bson:"tipo_inscricao"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"nome_completo"`
	BirthDate      string             `bson:"data_nascimento"`
	Birthplace     string             `bson:"naturalidade,omitempty"`
	Sex            string             `bson:"sexo,omitempty"`
	Address        string             `bson:"endereco,omitempty"`
	Phone          string             `bson:"telefone_whatsapp,omitempty"`
	Baptized       bool               `bson:"batizado"`
	BaptismParish  string             `bson:"paroquia_batismo,omitempty"`
	BaptismDiocese string             `bson:"diocese_batismo,omitempty"`
	FirstCommunion bool               `bson:"comunhao"`
	FatherName     string             `bson:"nome_pai,omitempty"`
	MotherName     string             `bson:"nome_mae,omitempty"`
	GodparentName  string             `bson:"nome_padrinho_madrinha,omitempty"`
	Community      string             `bson:"comunidade_curso,omitempty"`
	Catechist      string             `bson:"nome_catequista,omitempty"`
	CourseTime     string             `bson:"horario_curso,omitempty"`
	Status         string             `bson:"status"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func toMongoEnrollment(e *domain.Enrollment) mongoEnrollment {
	return mongoEnrollment{
		Type:           string(e.Type),
		Email:          e.Email,
		FullName:       e.FullName,
		BirthDate:      e.BirthDate,
		Birthplace:     e.Birthplace,
		Sex:            e.Sex,
		Address:        e.Address,
		Phone:          e.Phone,
		Baptized:       e.Baptized,
		BaptismParish:  e.BaptismParish,
		BaptismDiocese: e.BaptismDiocese,
		FirstCommunion: e.FirstCommunion,
		FatherName:     e.FatherName,
		MotherName:     e.MotherName,
		GodparentName:  e.GodparentName,
		Community:      e.Community,
		Catechist:      e.Catechist,
		CourseTime:     e.CourseTime,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt.Unix(),
		UpdatedAt:      e.UpdatedAt.Unix(),
	}
}

func (me mongoEnrollment) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:             me.ID.Hex(),
		Type:           domain.EnrollmentType(me.Type),
		Email:          me.Email,
		FullName:       me.FullName,
		BirthDate:      me.BirthDate,
		Birthplace:     me.Birthplace,
		Sex:            me.Sex,
		Address:        me.Address,
		Phone:          me.Phone,
		Baptized:       me.Baptized,
		BaptismParish:  me.BaptismParish,
		BaptismDiocese: me.BaptismDiocese,
		FirstCommunion: me.FirstCommunion,
		FatherName:     me.FatherName,
		MotherName:     me.MotherName,
		GodparentName:  me.GodparentName,
		Community:      me.Community,
		Catechist:      me.Catechist,
		CourseTime:     me.CourseTime,
		Status:         domain.EnrollmentStatus(me.Status),
		CreatedAt:      unixToTime(me.CreatedAt),
		UpdatedAt:      unixToTime(me.UpdatedAt),
	}
}

type mongoStatusEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EnrollmentID string             `bson:"inscricao_id"`
	Status       string             `bson:"status"`
	Note         string             `bson:"observacao,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
}

func (r *MongoEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	res, err := r.coll.InsertOne(ctx, toMongoEnrollment(enrollment))
	if err != nil {
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	created := *enrollment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoEnrollmentRepository) FindByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEnrollmentNotFound
	}

	var me mongoEnrollment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return me.toDomain(), nil
}

func (r *MongoEnrollmentRepository) List(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["email"] = bson.M{"$regex": filter.Email, "$options": "i"}
	}
	if filter.FullName != "" {
		query["nome_completo"] = bson.M{"$regex": filter.FullName, "$options": "i"}
	}
	if filter.Community != "" {
		query["comunidade_curso"] = bson.M{"$regex": filter.Community, "$options": "i"}
	}
	if filter.Sex != "" {
		query["sexo"] = filter.Sex
	}
	if filter.Baptized != nil {
		query["batizado"] = *filter.Baptized
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(filter.Limit).
		SetSkip(filter.Offset)

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	var enrollments []domain.Enrollment
	for cur.Next(ctx) {
		var me mongoEnrollment
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode enrollment: %w", err)
		}
		enrollments = append(enrollments, *me.toDomain())
	}
	return enrollments, cur.Err()
}

func (r *MongoEnrollmentRepository) Update(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(enrollment.ID)
	if err != nil {
		return nil, domain.ErrEnrollmentNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoEnrollment(enrollment))
	if err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (r *MongoEnrollmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEnrollmentNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEnrollmentNotFound
	}
	// History entries are kept: the status log is an audit trail.
	return nil
}

func (r *MongoEnrollmentRepository) AppendStatus(ctx context.Context, entry *domain.StatusEntry) (*domain.StatusEntry, error) {
	doc := mongoStatusEntry{
		EnrollmentID: entry.EnrollmentID,
		Status:       string(entry.Status),
		Note:         entry.Note,
		CreatedAt:    entry.CreatedAt.Unix(),
	}

	res, err := r.status.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert status entry: %w", err)
	}

	created := *entry
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoEnrollmentRepository) StatusHistory(ctx context.Context, enrollmentID string) ([]domain.StatusEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.status.Find(ctx, bson.M{"inscricao_id": enrollmentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status history: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.StatusEntry
	for cur.Next(ctx) {
		var ms mongoStatusEntry
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode status entry: %w", err)
		}
		entries = append(entries, domain.StatusEntry{
			ID:           ms.ID.Hex(),
			EnrollmentID: ms.EnrollmentID,
			Status:       domain.EnrollmentStatus(ms.Status),
			Note:         ms.Note,
			CreatedAt:    unixToTime(ms.CreatedAt),
		})
	}
	return entries, cur.Err()
}
