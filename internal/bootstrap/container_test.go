package bootstrap

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/samber/do"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/handler"
	"github.com/smart-forensic-ai/sketch-api/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer_LocalStack(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Chdir(t.TempDir())
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_DATABASE_DSN", ":memory:")
	t.Setenv("APP_REDIS_ADDR", mr.Addr())
	t.Setenv("APP_LOG_LEVEL", "error")
	t.Setenv("APP_AUTH_JWTSECRET", "container-test-secret")

	inj := BuildContainer()
	t.Cleanup(func() { _ = inj.Shutdown() })

	_, err := do.Invoke[*handler.GenerationHandler](inj)
	require.NoError(t, err)
	_, err = do.Invoke[*handler.ConversationHandler](inj)
	require.NoError(t, err)

	// no broker or bucket configured
	pub, err := do.Invoke[service.Publisher](inj)
	require.NoError(t, err)
	assert.Nil(t, pub)
	store, err := do.Invoke[service.ObjectStore](inj)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestBuildContainer_RequiresJWTSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_DATABASE_DSN", ":memory:")
	t.Setenv("APP_AUTH_JWTSECRET", "")

	inj := BuildContainer()
	t.Cleanup(func() { _ = inj.Shutdown() })

	_, err := do.Invoke[*config.Config](inj)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwtSecret")
}
