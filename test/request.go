package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// DoRequest 以 JSON 请求体调用 handler，setup 可写入身份、路径参数与 query
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any, setup ...func(c *gin.Context)) (resp response.ResponseBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(requestBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	for _, fn := range setup {
		fn(c)
	}
	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(resp.Code), w.Code)
	return
}

func WithIdentity(id scope.Identity) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Set(scope.IdentityKey, id)
	}
}

func WithParam(key, value string) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: key, Value: value})
	}
}

func WithQuery(rawQuery string) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Request.URL.RawQuery = rawQuery
	}
}

// Decode 将响应中的 data 转为具体类型
func Decode[T any](t *testing.T, resp response.ResponseBody) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
