package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrEmptyURL = errors.New("mongodb connection string is empty")

// Storage owns the process-lifetime database handle. The first Get
// establishes the connection; every later call returns the same handle.
// Connection failure is not retried here: the caller decides whether the
// process can live without a database (it cannot).
type Storage struct {
	url    string
	dbName string

	once    sync.Once
	client  *mongo.Client
	db      *mongo.Database
	connErr error

	// connect is swapped out in tests to count establishment attempts.
	connect func(ctx context.Context, url string) (*mongo.Client, error)
}

func New(url, dbName string) (*Storage, error) {
	const op = "storage.mongodb.New"

	if url == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyURL)
	}

	return &Storage{
		url:     url,
		dbName:  dbName,
		connect: defaultConnect,
	}, nil
}

// Get returns the memoized database handle, connecting on first use.
// Concurrent first calls converge on a single connection attempt.
func (s *Storage) Get(ctx context.Context) (*mongo.Database, error) {
	const op = "storage.mongodb.Get"

	s.once.Do(func() {
		client, err := s.connect(ctx, s.url)
		if err != nil {
			s.connErr = fmt.Errorf("%s: %w", op, err)
			return
		}

		s.client = client
		s.db = client.Database(s.dbName)
	})

	return s.db, s.connErr
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("storage.mongodb.HealthCheck: not connected")
	}
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func defaultConnect(ctx context.Context, url string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return client, nil
}
