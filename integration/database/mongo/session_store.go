package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/skiff/core/session"
)

// DefaultSessionCollection is the collection used by NewSessionStore callers
// that have no preference.
const DefaultSessionCollection = "sessions"

// Collection is the subset of *mongo.Collection used by SessionStore.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...options.Lister[options.DeleteManyOptions]) (*mongo.DeleteResult, error)
}

// SessionStore keeps one document per session.
//
// Values round-trip through BSON: ints come back as int32 or int64 and nested
// documents as bson.D.
type SessionStore struct {
	coll Collection
	now  func() time.Time
}

// NewSessionStore creates a store over coll.
func NewSessionStore(coll Collection) *SessionStore {
	return &SessionStore{coll: coll, now: time.Now}
}

type sessionDoc struct {
	ID        string         `bson:"_id"`
	Values    map[string]any `bson:"values"`
	CreatedAt time.Time      `bson:"created_at"`
	ExpiresAt *time.Time     `bson:"expires_at,omitempty"`
}

// EnsureIndexes creates a TTL index so MongoDB removes expired sessions on
// its own.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// Get implements session.Store.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrDecodeSession, err)
	}

	var expiresAt time.Time
	if doc.ExpiresAt != nil {
		expiresAt = *doc.ExpiresAt
	}
	return session.Restore(doc.ID, doc.Values, doc.CreatedAt, expiresAt), nil
}

// Save implements session.Store.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	doc := sessionDoc{
		ID:        sess.ID,
		Values:    sess.Values(),
		CreatedAt: sess.CreatedAt,
	}
	if !sess.ExpiresAt.IsZero() {
		exp := sess.ExpiresAt
		doc.ExpiresAt = &exp
	}

	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: sess.ID}}, doc, options.Replace().SetUpsert(true))
	return err
}

// Delete implements session.Store.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

// DeleteExpired implements session.Store. Sessions without an expiry are kept.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{
		{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: s.now()}}},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ session.Store = (*SessionStore)(nil)
