package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/middleware"
	"github.com/enerlink/enerlink/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

func testActor() models.ActorContext {
	return models.ActorContext{
		UserID:  "00000000-0000-0000-0000-000000000001",
		Name:    "Ana",
		Surname: "Torres",
		Email:   "ana@example.com",
		Role:    models.RoleAgent,
	}
}

// newTestRouter creates a gin engine with the actor injected, as the auth
// middleware would do after validating a token.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ActorKey, testActor())
		c.Next()
	})

	return r
}

// newPlainRouter creates a gin engine without any actor, for unauthenticated paths.
func newPlainRouter() *gin.Engine {
	return gin.New()
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
