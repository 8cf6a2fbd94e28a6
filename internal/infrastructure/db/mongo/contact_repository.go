package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const collectionContacts = "contacts"

// contactSortKeys maps API sort fields to document keys.
var contactSortKeys = map[string]string{
	ports.ContactSortCreatedAt:   "created_at",
	ports.ContactSortName:        "name",
	ports.ContactSortLastContact: "last_contact",
	ports.ContactSortPhone:       "phone_number",
}

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(collectionContacts)}
}

type contactDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PhoneNumber string             `bson:"phone_number"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email,omitempty"`
	Company     string             `bson:"company,omitempty"`
	Tags        []string           `bson:"tags"`
	Notes       string             `bson:"notes,omitempty"`
	IsActive    bool               `bson:"is_active"`
	LastContact *time.Time         `bson:"last_contact,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *contactDoc) toDomain() *domain.Contact {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Contact{
		ID:          d.ID.Hex(),
		PhoneNumber: d.PhoneNumber,
		Name:        d.Name,
		Email:       d.Email,
		Company:     d.Company,
		Tags:        tags,
		Notes:       d.Notes,
		IsActive:    d.IsActive,
		LastContact: utcPtr(d.LastContact),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := contactDoc{
		PhoneNumber: c.PhoneNumber,
		Name:        c.Name,
		Email:       c.Email,
		Company:     c.Company,
		Tags:        c.Tags,
		Notes:       c.Notes,
		IsActive:    c.IsActive,
		LastContact: c.LastContact,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicatePhone
		}
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone})
}

func (r *ContactRepository) findOne(ctx context.Context, filter bson.M) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs returns the contacts among ids that exist, keyed by id.
func (r *ContactRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Contact, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	out := make(map[string]*domain.Contact, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	for i := range docs {
		c := docs[i].toDomain()
		out[c.ID] = c
	}
	return out, nil
}

// List returns one page of contacts and the number of contacts matching the
// search. Search is matched literally and case-insensitively.
func (r *ContactRepository) List(ctx context.Context, f ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"phone_number": re},
			bson.M{"email": re},
			bson.M{"company": re},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	key, ok := contactSortKeys[f.SortBy]
	if !ok {
		key = "created_at"
	}
	dir := -1
	if f.SortAsc {
		dir = 1
	}
	opts := pageOptions(f.Page, f.Limit).SetSort(bson.D{{Key: key, Value: dir}, {Key: "_id", Value: dir}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}

	items := make([]*domain.Contact, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, total, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, ch ports.ContactChanges) (*domain.Contact, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrContactNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if ch.Name != nil {
		set["name"] = *ch.Name
	}
	if ch.Email != nil {
		set["email"] = *ch.Email
	}
	if ch.Company != nil {
		set["company"] = *ch.Company
	}
	if ch.Tags != nil {
		tags := *ch.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if ch.Notes != nil {
		set["notes"] = *ch.Notes
	}
	if ch.IsActive != nil {
		set["is_active"] = *ch.IsActive
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc contactDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) TouchLastContact(ctx context.Context, id string, at time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// $max keeps lastContact monotonic when inbound messages arrive out of order.
	_, err := r.coll.UpdateByID(ctx, oid, bson.M{"$max": bson.M{"last_contact": at.UTC()}})
	return err
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrContactNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the contacts collection.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
