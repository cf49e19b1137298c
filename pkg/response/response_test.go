package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

func perform(t *testing.T, h gin.HandlerFunc) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	body := perform(t, func(c *gin.Context) { Success(c, gin.H{"a": 1}) })
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "success", body["message"])
}

func TestError(t *testing.T) {
	t.Run("AppError保留错误码", func(t *testing.T) {
		body := perform(t, func(c *gin.Context) {
			Error(c, apperrors.ErrUpstream.WithCause(errors.New("dial tcp: refused")))
		})
		assert.Equal(t, float64(apperrors.ErrCodeUpstream), body["code"])
		assert.NotContains(t, body["message"], "refused")
	})

	t.Run("普通error包装为内部错误", func(t *testing.T) {
		body := perform(t, func(c *gin.Context) { Error(c, errors.New("boom")) })
		assert.Equal(t, float64(apperrors.ErrCodeInternal), body["code"])
	})

	t.Run("字段级错误放入data", func(t *testing.T) {
		body := perform(t, func(c *gin.Context) {
			Error(c, apperrors.Validation(map[string]string{"email": "Email is required"}))
		})
		assert.Equal(t, float64(apperrors.ErrCodeInvalidParams), body["code"])
		data := body["data"].(map[string]interface{})
		fields := data["fields"].(map[string]interface{})
		assert.Equal(t, "Email is required", fields["email"])
	})
}

func TestNewListData(t *testing.T) {
	d := NewListData([]int{}, 0, "clear_filters")
	assert.True(t, d.Empty)
	assert.Equal(t, []string{"clear_filters"}, d.Actions)

	d = NewListData([]int{1}, 1, "clear_filters")
	assert.False(t, d.Empty)
	assert.Nil(t, d.Actions)
}
