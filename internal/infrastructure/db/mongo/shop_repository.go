package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

const collectionShopItems = "shop_items"

type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShopItems)}
}

func (r *ShopRepository) Create(ctx context.Context, item *domain.ShopItem) (*domain.ShopItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	item.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*domain.ShopItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item domain.ShopItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.ShopItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.ShopItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
