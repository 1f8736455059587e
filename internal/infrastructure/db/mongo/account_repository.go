package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aireviews/review-system/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository on MongoDB. Each
// account is a single document keyed by unique email; every mutation is a
// one-document upsert or update, so the store's own per-document atomicity
// is the only consistency mechanism needed.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type accountDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	OTPHash    string             `bson:"otp_hash,omitempty"`
	OTPExpiry  time.Time          `bson:"otp_expiry,omitempty"`
	IsVerified bool               `bson:"is_verified"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		OTPHash:    d.OTPHash,
		OTPExpiry:  d.OTPExpiry,
		IsVerified: d.IsVerified,
		Role:       d.Role,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// UpsertOTP writes a fresh OTP digest and expiry against the account,
// creating the record on first contact. Concurrent requests for the same
// email race last-write-wins on the OTP fields, which is the intended
// behavior: only the most recent code is ever valid.
func (r *AccountRepository) UpsertOTP(ctx context.Context, email, role, otpHash string, otpExpiry time.Time) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"otp_hash":    otpHash,
		"otp_expiry":  otpExpiry.UTC(),
		"is_verified": false,
		"updated_at":  now,
	}
	setOnInsert := bson.M{
		"email":      email,
		"created_at": now,
	}
	// Role is only ever elevated through the admin flow; the user flow
	// writes it on insert and leaves existing records untouched.
	if role == domain.RoleAdmin {
		set["role"] = domain.RoleAdmin
	} else {
		setOnInsert["role"] = role
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc accountDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert otp: %w", err)
	}
	return doc.toDomain(), nil
}

// ClearOTP removes pending OTP state and records the verification outcome.
func (r *AccountRepository) ClearOTP(ctx context.Context, email string, verified bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$unset": bson.M{"otp_hash": "", "otp_expiry": ""},
		"$set":   bson.M{"is_verified": verified, "updated_at": time.Now().UTC()},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index backing the identity key.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
