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

const collectionSubmissions = "submissions"

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(collectionSubmissions)}
}

// Create inserts a submission. The unique (user_uid, task_id) index turns a
// racing duplicate insert into domain.ErrDuplicateSubmission.
func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSubmission
		}
		return nil, err
	}
	return s, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Submission
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) FindByUserAndTask(ctx context.Context, uid, taskID string) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Submission
	err := r.col.FindOne(ctx, bson.M{"user_uid": uid, "task_id": taskID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, uid string) ([]*domain.Submission, error) {
	return r.list(ctx, bson.M{"user_uid": uid})
}

func (r *SubmissionRepository) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *SubmissionRepository) ListByTaskAndStatus(ctx context.Context, taskID string, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	return r.list(ctx, bson.M{"task_id": taskID, "status": status})
}

func (r *SubmissionRepository) list(ctx context.Context, filter bson.M) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []*domain.Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Transition updates the status only if the row is still in `from`. The
// status filter is the serialization point for racing reviews: exactly one
// caller observes a modified row.
func (r *SubmissionRepository) Transition(ctx context.Context, id string, from, to domain.SubmissionStatus, reason string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": to}
	if reason != "" {
		set["decline_reason"] = reason
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// Resubmit moves a rejected submission back to pending in place, clearing
// the decline reason and refreshing the timestamp. The media URL is only
// replaced when a new one is provided.
func (r *SubmissionRepository) Resubmit(ctx context.Context, id, mediaURL string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": domain.StatusPending, "submitted_at": at}
	if mediaURL != "" {
		set["media_url"] = mediaURL
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.StatusRejected},
		bson.M{"$set": set, "$unset": bson.M{"decline_reason": ""}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *SubmissionRepository) DeleteByTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"task_id": taskID})
	return err
}

func (r *SubmissionRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

// EnsureIndexes creates the unique (user_uid, task_id) index that backs the
// one-submission-per-task invariant.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_uid", Value: 1}, {Key: "task_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "task_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
