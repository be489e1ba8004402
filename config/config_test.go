package config

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "socialfeed", cfg.MongoDB)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, PolicyOrphan, cfg.CommentDeletePolicy)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfig_PrefixedKeyWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8000")
	t.Setenv("SOCIALFEED_PORT", "9000")
	t.Setenv("COMMENT_DELETE_POLICY", "cascade")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, PolicyCascade, cfg.CommentDeletePolicy)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SOCIALFEED_JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_UnknownPolicy(t *testing.T) {
	cfg := &Config{JWTSecret: "x", MongoDB: "db", CommentDeletePolicy: "shred"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shred")

	_, traced := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, traced)
}
