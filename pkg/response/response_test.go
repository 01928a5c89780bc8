package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func doRequest(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSuccessEnvelope(t *testing.T) {
	w, resp := doRequest(func(c *gin.Context) {
		Success(c, gin.H{"audit_no": "AUD123"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

// 业务错误走 HTTP 200，错误码放信封里
func TestBusinessErrorKeepsHTTP200(t *testing.T) {
	w, resp := doRequest(func(c *gin.Context) {
		BusinessError(c, CodeAuditNotFound, "稽核档案不存在")
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeAuditNotFound, resp.Code)
	assert.Equal(t, "稽核档案不存在", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestParamError(t *testing.T) {
	_, resp := doRequest(func(c *gin.Context) {
		ParamError(c, "audit_no 参数缺失")
	})
	assert.Equal(t, CodeParamError, resp.Code)
}
