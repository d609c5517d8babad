package session_test

import (
	"assignman/session"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHasRole(t *testing.T) {
	secCtx := session.Context{Perms: []string{"system:admin", "other:perm"}}

	assert.True(t, secCtx.HasRole("system:admin"))
	assert.True(t, secCtx.HasRole("SYSTEM:ADMIN"))
	assert.False(t, secCtx.HasRole("missing:perm"))
	assert.False(t, (&session.Context{}).HasRole("system:admin"))
}

func TestSecurityContextInGinContext(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)

	t.Run("should round-trip a context with a token", func(t *testing.T) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		secCtx := &session.Context{Token: "token-123", Identity: session.Identity{ID: 7, Name: "ann"}}

		session.SaveSecurityContext(ctx, secCtx)
		assert.Equal(t, secCtx, session.FindSecurityContext(ctx))
	})

	t.Run("should ignore a context without a token", func(t *testing.T) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		session.SaveSecurityContext(ctx, &session.Context{})
		assert.Nil(t, session.FindSecurityContext(ctx))
	})

	t.Run("should return nil when nothing is saved", func(t *testing.T) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Nil(t, session.FindSecurityContext(ctx))
	})
}
