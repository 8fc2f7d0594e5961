package params

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithID(id string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

func TestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	id, ok := ID(ctxWithID("42"))
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	_, ok = ID(ctxWithID("abc"))
	assert.False(t, ok)

	_, ok = ID(ctxWithID(""))
	assert.False(t, ok)
}

func TestOptionalID(t *testing.T) {
	assert.Nil(t, OptionalID(""))
	assert.Nil(t, OptionalID("abc"))

	id := OptionalID("7")
	if assert.NotNil(t, id) {
		assert.Equal(t, 7, *id)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100, Clamp("", 100, 200))
	assert.Equal(t, 100, Clamp("x", 100, 200))
	assert.Equal(t, 5, Clamp("5", 100, 200))
	assert.Equal(t, 0, Clamp("-1", 100, 200))
	assert.Equal(t, 200, Clamp("500", 100, 200))
}
