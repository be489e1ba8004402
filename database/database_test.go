package database

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CloseBeforeConnect(t *testing.T) {
	s := NewStore("mongodb://localhost:27017", "socialfeed", time.Second, zerolog.Nop())

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	_, err := s.DB(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStore_InvalidURI(t *testing.T) {
	s := NewStore("not-a-mongo-uri://", "socialfeed", time.Second, zerolog.Nop())

	err := s.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo connect")
}

func TestStore_DefaultConnectTimeout(t *testing.T) {
	s := NewStore("mongodb://localhost:27017", "socialfeed", 0, zerolog.Nop())

	assert.Equal(t, 10*time.Second, s.connectTimeout)
}

func TestStore_PingWithoutConnection(t *testing.T) {
	s := NewStore("mongodb://localhost:27017", "socialfeed", time.Second, zerolog.Nop())
	assert.Error(t, s.Ping(context.Background()))
}
