package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 20},
		{"page=3&limit=10", 3, 10},
		{"page=0&limit=-5", 1, 20},
		{"page=abc&limit=xyz", 1, 20},
		{"limit=1000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)
			p := Parse(c)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}

func TestMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, p.NewMeta(21))
	assert.Equal(t, 0, p.NewMeta(0).TotalPages)
}
