package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// Ensure upserts the user keyed on uid. Balances and the admin flag are only
// seeded on insert; later requests never overwrite ledger state.
func (r *UserRepository) Ensure(ctx context.Context, id domain.Identity) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"uid":        id.UID,
			"name":       id.Name,
			"email":      id.Email,
			"points":     0,
			"tokens":     0,
			"admin":      id.Admin,
			"created_at": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user domain.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": id.UID}, update, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Credit atomically increments both balances.
func (r *UserRepository) Credit(ctx context.Context, uid string, points, tokens int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$inc": bson.M{"points": points, "tokens": tokens}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DebitTokens subtracts cost only when the balance covers it. The filter on
// the current balance is what keeps the ledger from going negative under
// concurrent confirms.
func (r *UserRepository) DebitTokens(ctx context.Context, uid string, cost int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"uid": uid, "tokens": bson.M{"$gte": cost}}
	update := bson.M{"$inc": bson.M{"tokens": -cost}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInsufficientTokens
		}
		return nil, err
	}
	return &user, nil
}

// ReverseCredit subtracts previously granted balances, clamping both at zero
// in a single pipeline update.
func (r *UserRepository) ReverseCredit(ctx context.Context, uid string, points, tokens int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"points": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$points", points}}}},
			"tokens": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$tokens", tokens}}}},
		}}},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListNonAdmin returns all non-admin users sorted by points descending.
func (r *UserRepository) ListNonAdmin(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"admin": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureIndexes creates the unique uid index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
