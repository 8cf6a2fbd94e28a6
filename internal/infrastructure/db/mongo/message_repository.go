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

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const collectionMessages = "messages"

// notDeleted matches messages that have not been soft-deleted.
var notDeleted = bson.M{"$ne": true}

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ContactID         string             `bson:"contact_id"`
	Direction         string             `bson:"direction"`
	Type              string             `bson:"message_type"`
	Content           string             `bson:"content"`
	MediaURL          string             `bson:"media_url,omitempty"`
	WhatsAppMessageID string             `bson:"whatsapp_message_id,omitempty"`
	Status            string             `bson:"status"`
	IsDeleted         bool               `bson:"is_deleted"`
	DeletedAt         *time.Time         `bson:"deleted_at,omitempty"`
	Timestamp         time.Time          `bson:"timestamp"`
}

func (d *messageDoc) toDomain() *domain.Message {
	return &domain.Message{
		ID:                d.ID.Hex(),
		ContactID:         d.ContactID,
		Direction:         domain.MessageDirection(d.Direction),
		Type:              domain.MessageType(d.Type),
		Content:           d.Content,
		MediaURL:          d.MediaURL,
		WhatsAppMessageID: d.WhatsAppMessageID,
		Status:            domain.MessageStatus(d.Status),
		IsDeleted:         d.IsDeleted,
		Timestamp:         d.Timestamp.UTC(),
	}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		ContactID:         m.ContactID,
		Direction:         string(m.Direction),
		Type:              string(m.Type),
		Content:           m.Content,
		MediaURL:          m.MediaURL,
		WhatsAppMessageID: m.WhatsAppMessageID,
		Status:            string(m.Status),
		Timestamp:         m.Timestamp,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc messageDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": notDeleted}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns one page of messages, newest first, and the total match count.
func (r *MessageRepository) List(ctx context.Context, f ports.ListMessagesFilter) ([]*domain.Message, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"is_deleted": notDeleted}
	if f.ContactID != "" {
		filter["contact_id"] = f.ContactID
	}
	if f.Direction != "" {
		filter["direction"] = f.Direction
	}
	if ts := timeRange(f.From, f.To); ts != nil {
		filter["timestamp"] = ts
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	opts := pageOptions(f.Page, f.Limit).SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode messages: %w", err)
	}

	items := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, total, nil
}

// CountByContact counts every message ever exchanged with a contact,
// soft-deleted ones included.
func (r *MessageRepository) CountByContact(ctx context.Context, contactID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"contact_id": contactID})
	if err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return n, nil
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc messageDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "is_deleted": notDeleted},
		bson.M{"$set": bson.M{"status": string(status)}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("update message status: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MessageRepository) SoftDelete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMessageNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": notDeleted},
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

type countBucket struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

type statsFacets struct {
	ByDirection []countBucket `bson:"by_direction"`
	ByStatus    []countBucket `bson:"by_status"`
	ByType      []countBucket `bson:"by_type"`
}

func countBy(field string) bson.A {
	return bson.A{bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}}
}

// Stats aggregates visible messages in [from, to]; zero bounds are open.
func (r *MessageRepository) Stats(ctx context.Context, from, to time.Time) (*ports.MessageStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{"is_deleted": notDeleted}
	if ts := timeRange(from, to); ts != nil {
		match["timestamp"] = ts
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$facet", Value: bson.M{
			"by_direction": countBy("direction"),
			"by_status":    countBy("status"),
			"by_type":      countBy("message_type"),
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate message stats: %w", err)
	}
	var facets []statsFacets
	if err := cur.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("decode message stats: %w", err)
	}

	stats := &ports.MessageStats{ByStatus: map[string]int64{}, ByType: map[string]int64{}}
	if len(facets) == 0 {
		return stats, nil
	}
	for _, b := range facets[0].ByDirection {
		stats.Total += b.Count
		switch domain.MessageDirection(b.Key) {
		case domain.DirectionIncoming:
			stats.Incoming = b.Count
		case domain.DirectionOutgoing:
			stats.Outgoing = b.Count
		}
	}
	for _, b := range facets[0].ByStatus {
		stats.ByStatus[b.Key] = b.Count
	}
	for _, b := range facets[0].ByType {
		stats.ByType[b.Key] = b.Count
	}
	return stats, nil
}

// EnsureIndexes creates necessary indexes on the messages collection.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "contact_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "whatsapp_message_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func timeRange(from, to time.Time) bson.M {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		r["$lte"] = to.UTC()
	}
	return r
}
