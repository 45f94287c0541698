// Package mongostore stores graphs as documents in a MongoDB collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pathfinder/pkg/graph"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// Default database and collection names.
const (
	DefaultDatabase   = "pathfinder"
	DefaultCollection = "graphs"
)

type document struct {
	Name      string         `bson:"_id"`
	Snapshot  graph.Snapshot `bson:"snapshot"`
	Nodes     int            `bson:"nodes"`
	Links     int            `bson:"links"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// Store implements store.Store on a MongoDB collection. The graph name is the
// document _id.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to uri and pings the primary. The database defaults to
// DefaultDatabase when empty.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if database == "" {
		database = DefaultDatabase
	}
	return New(client, client.Database(database).Collection(DefaultCollection)), nil
}

// New wraps a connected client and collection. The store disconnects the
// client on Close.
func New(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{client: client, coll: coll}
}

func (s *Store) List(ctx context.Context) ([]store.Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"nodes": 1, "links": 1, "updated_at": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cur.Close(ctx)

	var infos []store.Info
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode: %w", err)
		}
		infos = append(infos, store.Info{
			Name:      doc.Name,
			Nodes:     doc.Nodes,
			Links:     doc.Links,
			UpdatedAt: doc.UpdatedAt.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodb cursor: %w", err)
	}
	return infos, nil
}

func (s *Store) Get(ctx context.Context, name string) (graph.Snapshot, error) {
	if err := store.CheckName(name); err != nil {
		return graph.Snapshot{}, err
	}
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Snapshot{}, store.NotFound(name)
	}
	if err != nil {
		return graph.Snapshot{}, fmt.Errorf("mongodb find: %w", err)
	}
	return doc.Snapshot, nil
}

func (s *Store) Put(ctx context.Context, name string, snap graph.Snapshot) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	doc := document{
		Name:      name,
		Snapshot:  snap,
		Nodes:     len(snap.Nodes),
		Links:     len(snap.Links),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb replace: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.CheckName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("mongodb delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(name)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
