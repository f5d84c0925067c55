package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hearing-server/config"
)

func TestNewContainer_Dev(t *testing.T) {
	cfg := config.Default()
	cfg.Store.FixturePath = filepath.Join("..", "resources", "cases.json")

	c, err := NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.HearingsRefresherService.RefreshHearings(context.Background())
	require.NoError(t, err)

	cases, err := c.HearingService.Cases()
	require.NoError(t, err)
	assert.Len(t, cases, 8)
}

func TestNewContainer_InvalidZone(t *testing.T) {
	cfg := config.Default()
	cfg.CivilZone.Offset = "noon"

	_, err := NewContainer(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewContainer_ProdRedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.ENV_PROD
	cfg.Redis.Address = "127.0.0.1:1"
	cfg.Store.BaseURL = "http://127.0.0.1:1"
	cfg.Store.APIKey = "k"

	_, err := NewContainer(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
