package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// defaultAdminPassword is only ever written to an empty database; the seed
// admin is expected to change it on first login.
const defaultAdminPassword = "admin123"

// Bootstrap prepares the database for use: unique indexes, the seed access
// groups (permission sets re-synced on every startup) and, on an empty user
// store, the default admin account linked to the admin group. Idempotent.
func Bootstrap(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	groups := NewGroupRepository(db)
	for i := range domain.SeedGroups {
		if err := groups.Upsert(ctx, &domain.SeedGroups[i]); err != nil {
			return err
		}
	}
	log.Info().Int("groups", len(domain.SeedGroups)).Msg("seed access groups synced")

	users := NewUserRepository(db)
	memberships := NewMembershipRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := seedAdmin(ctx, users, log); err != nil {
			return err
		}
	}

	// The admin account, seeded or pre-existing, always belongs to the
	// admin group.
	admin, err := users.FindByLogin(ctx, domain.DefaultAdminLogin)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	adminGroup, err := groups.FindByName(ctx, "admin")
	if err != nil {
		return err
	}
	return memberships.Add(ctx, admin.ID, adminGroup.ID)
}

func seedAdmin(ctx context.Context, users *MongoUserRepository, log zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		Login:        domain.DefaultAdminLogin,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	log.Info().Str("login", domain.DefaultAdminLogin).Msg("default admin user created")
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		userCollection: {
			{
				Keys:    bson.D{{Key: "usuario", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "ativo", Value: 1}}},
		},
		groupCollection: {
			{
				Keys:    bson.D{{Key: "nome", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "ativo", Value: 1}}},
		},
		membershipCollection: {
			{
				Keys:    bson.D{{Key: "usuario_id", Value: 1}, {Key: "grupo_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "grupo_id", Value: 1}}},
		},
		enrollmentCollection: {
			{Keys: bson.D{{Key: "tipo_inscricao", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		statusCollection: {
			{Keys: bson.D{{Key: "inscricao_id", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
