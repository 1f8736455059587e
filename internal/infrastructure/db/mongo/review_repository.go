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
	"github.com/aireviews/review-system/internal/core/ports"
)

const reviewCollection = "reviews"

// ReviewRepository implements ports.ReviewRepository on MongoDB.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewCollection)}
}

type reviewDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Email       string             `bson:"email,omitempty"`
	Text        string             `bson:"text"`
	Rating      int                `bson:"rating"`
	Sentiment   string             `bson:"sentiment"`
	AIScore     float64            `bson:"ai_score"`
	Spam        bool               `bson:"spam"`
	Problems    []string           `bson:"problems"`
	GoodPoints  []string           `bson:"good_points"`
	AIUpdatedAt time.Time          `bson:"ai_updated_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *reviewDoc) toDomain() *domain.Review {
	return &domain.Review{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Email:       d.Email,
		Text:        d.Text,
		Rating:      d.Rating,
		Sentiment:   d.Sentiment,
		AIScore:     d.AIScore,
		Spam:        d.Spam,
		Problems:    d.Problems,
		GoodPoints:  d.GoodPoints,
		AIUpdatedAt: d.AIUpdatedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromDomain(r *domain.Review) *reviewDoc {
	return &reviewDoc{
		UserID:      r.UserID,
		Email:       r.Email,
		Text:        r.Text,
		Rating:      r.Rating,
		Sentiment:   r.Sentiment,
		AIScore:     r.AIScore,
		Spam:        r.Spam,
		Problems:    r.Problems,
		GoodPoints:  r.GoodPoints,
		AIUpdatedAt: r.AIUpdatedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomain(review)
	if doc.Problems == nil {
		doc.Problems = []string{}
	}
	if doc.GoodPoints == nil {
		doc.GoodPoints = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	created := *review
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id, userID string) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var doc reviewDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc reviewDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find latest review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context, filter ports.ReviewFilter) ([]domain.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Sentiment != "" {
		query["sentiment"] = filter.Sentiment
	}
	if filter.Spam != nil {
		query["spam"] = *filter.Spam
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64(page-1) * int64(filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []domain.Review
	for cur.Next(ctx) {
		var doc reviewDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id, userID string, text string, rating int) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"text":       text,
		"rating":     rating,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reviewDoc
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerFilter(id, userID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) SetSpam(ctx context.Context, id string, spam bool) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	update := bson.M{"$set": bson.M{"spam": spam, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc reviewDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("set spam flag: %w", err)
	}
	return doc.toDomain(), nil
}

// Stats computes the dashboard aggregates with one query per figure, the
// same shapes the admin surface has always used: counts, a sentiment
// breakdown, the average score over non-spam reviews, and the three most
// frequent problem and good-point labels.
func (r *ReviewRepository) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	spamCount, err := r.coll.CountDocuments(ctx, bson.M{"spam": true})
	if err != nil {
		return nil, fmt.Errorf("count spam: %w", err)
	}

	sentiments, err := r.sentimentBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	avgScore, err := r.averageScore(ctx)
	if err != nil {
		return nil, err
	}
	topProblems, err := r.topLabels(ctx, "problems")
	if err != nil {
		return nil, err
	}
	topGoodPoints, err := r.topLabels(ctx, "good_points")
	if err != nil {
		return nil, err
	}

	return &domain.ReviewStats{
		TotalReviews:  total,
		SpamCount:     spamCount,
		Sentiments:    sentiments,
		AvgAIScore:    avgScore,
		TopProblems:   topProblems,
		TopGoodPoints: topGoodPoints,
	}, nil
}

func (r *ReviewRepository) sentimentBreakdown(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$sentiment", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sentiment breakdown: %w", err)
	}
	defer cur.Close(ctx)

	out := map[string]int64{
		domain.SentimentPositive: 0,
		domain.SentimentNeutral:  0,
		domain.SentimentNegative: 0,
	}
	for cur.Next(ctx) {
		var row struct {
			Sentiment string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode sentiment row: %w", err)
		}
		out[row.Sentiment] = row.Count
	}
	return out, cur.Err()
}

func (r *ReviewRepository) averageScore(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"spam": false}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg_score": bson.M{"$avg": "$ai_score"}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			AvgScore float64 `bson:"avg_score"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode average score: %w", err)
		}
		return row.AvgScore, nil
	}
	return 0, cur.Err()
}

func (r *ReviewRepository) topLabels(ctx context.Context, field string) ([]domain.LabeledCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$" + field}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: 3}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var out []domain.LabeledCount
	for cur.Next(ctx) {
		var row struct {
			Text  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", field, err)
		}
		out = append(out, domain.LabeledCount{Text: row.Text, Count: row.Count})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the indexes backing owner lookups and listing sorts.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "sentiment", Value: 1}}},
		{Keys: bson.D{{Key: "spam", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// ownerFilter builds an _id filter optionally scoped to the owning user.
func ownerFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}
	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}
	return filter, nil
}
