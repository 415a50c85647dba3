package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/middleware"
)

func setActor(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor_id", id)
		c.Next()
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	called := false

	r := gin.New()
	r.POST("/payroll/batch", setActor("usr-1"), middleware.Idempotency(rdb), func(c *gin.Context) {
		called = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/batch", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CacheHitReplaysResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/payroll/batch:usr-1:key-123").SetVal(`{"batch_id":"b-1"}`)

	called := false
	r := gin.New()
	r.POST("/payroll/batch", setActor("usr-1"), middleware.Idempotency(rdb), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/batch", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Ok   bool `json:"ok"`
		Data struct {
			BatchID string `json:"batch_id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, "b-1", body.Data.BatchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestTakesLock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/payroll/batch:usr-1:key-123"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	r := gin.New()
	r.POST("/payroll/batch", setActor("usr-1"), middleware.Idempotency(rdb), func(c *gin.Context) {
		assert.Equal(t, cacheKey, c.GetString("idempotency_cache_key"))
		assert.Equal(t, cacheKey+":lock", c.GetString("idempotency_lock_key"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/batch", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/payroll/batch:usr-1:key-123"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	called := false
	r := gin.New()
	r.POST("/payroll/batch", setActor("usr-1"), middleware.Idempotency(rdb), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/batch", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-123")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}
