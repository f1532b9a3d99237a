package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/items/12", http.StatusOK},
		{"/items/0", http.StatusBadRequest},
		{"/items/abc", http.StatusBadRequest},
		{"/items/-3", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := gin.New()
			r.GET("/items/:id", func(c *gin.Context) {
				id, ok := ParamID(c, "id")
				if !ok {
					return
				}
				assert.Equal(t, uint(12), id)
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestQueryLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		want     int
		wantCode int
	}{
		{"", 10, http.StatusOK},
		{"?limit=3", 3, http.StatusOK},
		{"?limit=0", 0, http.StatusBadRequest},
		{"?limit=x", 0, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) {
				limit, ok := QueryLimit(c, 10)
				if !ok {
					return
				}
				assert.Equal(t, tt.want, limit)
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/"+tt.query, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestQueryUint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got uint
	r.GET("/", func(c *gin.Context) {
		v, ok := QueryUint(c, "category_id")
		if !ok {
			return
		}
		got = v
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/?category_id=4", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), got)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/?category_id=four", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
