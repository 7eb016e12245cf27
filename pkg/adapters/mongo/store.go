// Package mongo stores mazes as MongoDB documents, one per maze name.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultDatabase   = "wayfinder"
	DefaultCollection = "mazes"
)

// document is the stored form of a maze, one digit string per row.
type document struct {
	Name      string    `bson:"_id"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	Rows      []string  `bson:"rows"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toDocument(name string, g *domain.Grid) document {
	return document{
		Name:      name,
		Width:     g.Width(),
		Height:    g.Height(),
		Rows:      gridfile.EncodeRows(g),
		UpdatedAt: time.Now().UTC(),
	}
}

func (d document) grid() (*domain.Grid, error) {
	g, err := domain.NewGrid(d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	if err := gridfile.DecodeRows(d.Rows, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Store implements ports.MazeStore on a MongoDB collection.
type Store struct {
	client     *driver.Client
	collection *driver.Collection
}

// Connect dials uri and returns a store over database/collection.
// Empty names fall back to DefaultDatabase and DefaultCollection.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := driver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return New(client, database, collection), nil
}

// New creates a store from an existing client.
func New(client *driver.Client, database, collection string) *Store {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// Save upserts the maze document.
func (s *Store) Save(ctx context.Context, name string, grid *domain.Grid) error {
	doc := toDocument(name, grid)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, opts); err != nil {
		return fmt.Errorf("failed to save maze to mongo: %w", err)
	}
	return nil
}

// Load fetches and decodes the maze.
func (s *Store) Load(ctx context.Context, name string) (*domain.Grid, error) {
	var doc document
	if err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrMazeNotFound
		}
		return nil, fmt.Errorf("failed to get maze from mongo: %w", err)
	}
	g, err := doc.grid()
	if err != nil {
		return nil, fmt.Errorf("failed to decode maze %q: %w", name, err)
	}
	return g, nil
}

// Delete removes the maze. Unknown names are not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("failed to delete maze from mongo: %w", err)
	}
	return nil
}

// List returns every maze name in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var row struct {
			Name string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode maze name: %w", err)
		}
		names = append(names, row.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}
	return names, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
