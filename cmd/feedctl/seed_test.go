package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	posts, messages, cvs := memoryServices(zerolog.New(io.Discard))

	var out []string
	printf := func(format string, a ...any) { out = append(out, fmt.Sprintf(format, a...)) }

	require.NoError(t, seed(ctx, posts, messages, cvs, printf))
	require.NoError(t, seed(ctx, posts, messages, cvs, printf))
	assert.Contains(t, out, "cv for seed_alice already exists")

	all, err := posts.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"seed_bob"}, all[0].Likes)
	require.Len(t, all[0].Comments, 1)

	contacts, err := messages.ListContacts(ctx, "seed_bob")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "yo", contacts[0].LastMessage)
}

func TestSeedDryRunNeedsNoDatabase(t *testing.T) {
	timeoutFlag = 5 * time.Second
	t.Setenv("SOCIALFEED_MONGO_URI", "not-a-mongo-uri://")

	var out bytes.Buffer
	cmd := seedCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dry-run"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "post ")
	assert.Contains(t, out.String(), "cv ")
}
