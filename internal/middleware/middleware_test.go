package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret-0123456789"))))
	r.Use(Security(), Visitor(nil))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetVisitorID(c))
	})
	return r
}

func TestVisitor_AssignsAndKeepsID(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Body.String()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// 带上 cookie 再次访问，ID 不变且不重写 cookie
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
	assert.Empty(t, w.Result().Cookies())

	// 新访客拿到不同的 ID
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEqual(t, id, w.Body.String())
}

func TestVisitor_LogsSaveFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// 3 字节的加密密钥不是合法 AES 长度，写 cookie 必然失败
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret-0123456789"), []byte("bad"))))
	r.Use(Visitor(logger))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetVisitorID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "保存访客 session 失败")
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Output: &buf,
		Level:  hclog.Info,
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[INFO]")
	assert.Contains(t, lines[0], "path=/ok")
	assert.Contains(t, lines[0], "status=200")
	assert.Contains(t, lines[1], "[WARN]")
	assert.Contains(t, lines[1], "status=404")
}
