package middleware

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/projects/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	})

	w := do(r, http.MethodGet, "/projects/123", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	out := buf.String()
	assert.Contains(t, out, `"path":"/projects/:id"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"level":"warning"`)

	buf.Reset()
	do(r, http.MethodGet, "/nowhere", nil, nil)
	assert.Contains(t, buf.String(), `"path":"unmatched"`)
}
