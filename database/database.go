package database

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	ColPosts    = "posts"
	ColComments = "comments"
	ColMessages = "messages"
	ColContacts = "contacts"
	ColCVs      = "cvs"
)

// ErrClosed is returned by DB after Close.
var ErrClosed = errors.New("store is closed")

// Store is the process-wide handle to the document database. It is built
// once in main and injected everywhere; the first Connect (or DB) call dials,
// later and concurrent calls reuse that connection.
type Store struct {
	uri            string
	dbName         string
	connectTimeout time.Duration
	log            zerolog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	closed bool
}

func NewStore(uri, dbName string, connectTimeout time.Duration, log zerolog.Logger) *Store {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	return &Store{
		uri:            uri,
		dbName:         dbName,
		connectTimeout: connectTimeout,
		log:            log,
	}
}

// Connect dials and pings the server. It is a no-op once connected; a failed
// attempt leaves the store unconnected so the next call retries.
func (s *Store) Connect(ctx context.Context) error {
	_, err := s.DB(ctx)
	return err
}

// DB returns the database, connecting on first use.
func (s *Store) DB(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	opts := options.Client().
		ApplyURI(s.uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, s.connectTimeout)
		defer cancel()
		return client.Ping(pctx, readpref.Primary())
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	notify := func(err error, wait time.Duration) {
		s.log.Warn().Err(err).Dur("retry_in", wait).Msg("mongo ping failed")
	}
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	s.client = client
	s.db = client.Database(s.dbName)
	s.log.Info().Str("db", s.dbName).Msg("connected to MongoDB")
	return s.db, nil
}

// Ping checks the live connection; used by the health route.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return errors.New("store is not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects. It is safe to call more than once and before Connect.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}
