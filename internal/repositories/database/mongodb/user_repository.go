package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/nepalfund/nepalfund_backend/internal/models"
	"github.com/nepalfund/nepalfund_backend/internal/utils/mapping"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	col *mongo.Collection
}

func newMongoUserRepository(s *Store) portsrepo.UserRepositoryFacade {
	return &MongoUserRepository{col: s.colUsers}
}

var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var m models.User
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindUsersByEmailOrGoogleID(ctx context.Context, email, googleID string) ([]domain.User, error) {
	filter := bson.M{"email": email}
	if googleID != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"email": email},
			bson.M{"googleId": googleID},
		}}
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by email or google id: %w", err)
	}
	var ms []models.User
	if err := cur.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastUpdatedAt.IsZero() {
		user.LastUpdatedAt = now
	}

	if _, err := r.col.InsertOne(ctx, mapping.ToModelUser(user)); err != nil {
		if IsDup(err) {
			return nil, fmt.Errorf("failed to save user: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	if m.LastUpdatedAt.IsZero() {
		m.LastUpdatedAt = time.Now().UTC()
	}
	set := bson.M{
		"email":            m.Email,
		"provider":         m.Provider,
		"firstName":        m.FirstName,
		"lastName":         m.LastName,
		"photo":            m.Photo,
		"profileCompleted": m.ProfileCompleted,
		"bio":              m.Bio,
		"gender":           m.Gender,
		"phone":            m.Phone,
		"username":         m.Username,
		"updatedAt":        m.LastUpdatedAt,
	}
	if m.PasswordHash != nil {
		set["password"] = *m.PasswordHash
	}
	if m.GoogleID != nil {
		set["googleId"] = *m.GoogleID
	}

	res, err := r.col.UpdateByID(ctx, m.UserID, bson.M{"$set": set})
	if err != nil {
		if IsDup(err) {
			return fmt.Errorf("failed to update user: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", m.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) UpdateUserByEmail(ctx context.Context, email string, patch domain.ProfilePatch) (*domain.User, error) {
	set := patchDocument(patch)
	set["updatedAt"] = time.Now().UTC()

	var m models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user by email: %w", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func patchDocument(p domain.ProfilePatch) bson.M {
	set := bson.M{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("firstName", p.FirstName)
	put("lastName", p.LastName)
	put("username", p.Username)
	put("bio", p.Bio)
	put("gender", p.Gender)
	put("phone", p.Phone)
	put("photo", p.Photo)
	if p.ProfileCompleted != nil {
		set["profileCompleted"] = *p.ProfileCompleted
	}
	return set
}
