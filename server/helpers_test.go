package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Request.Host = "rt.example.com"
	return c
}

func TestSafeInternalURL(t *testing.T) {
	c := testContext(t, "http://rt.example.com/activity")

	cases := []struct {
		name      string
		candidate string
		want      string
	}{
		{"rooted path passes", "/browse?page=2", "/browse?page=2"},
		{"empty falls back", "", "/activity"},
		{"protocol relative falls back", "//evil.com/x", "/activity"},
		{"foreign host falls back", "http://evil.com/browse", "/activity"},
		{"same host is stripped to path", "http://rt.example.com/browse?q=x#top", "/browse?q=x#top"},
		{"relative path falls back", "browse", "/activity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, safeInternalURL(c, tc.candidate, "/activity"))
		})
	}
}

func TestCategoryFromRatingType(t *testing.T) {
	assert.Equal(t, "artists", categoryFromRatingType("Artist"))
	assert.Equal(t, "albums", categoryFromRatingType("album"))
	assert.Equal(t, "songs", categoryFromRatingType("Song"))
	assert.Equal(t, "songs", categoryFromRatingType("track"))
	assert.Equal(t, "genres", categoryFromRatingType("Genre"))
	assert.Equal(t, "all", categoryFromRatingType(""))
	assert.Equal(t, "all", categoryFromRatingType("mixtape"))
}

func TestAllowedUploadFile(t *testing.T) {
	assert.True(t, allowedUploadFile("cover.PNG"))
	assert.True(t, allowedUploadFile("pic.jpeg"))
	assert.False(t, allowedUploadFile("notes.txt"))
	assert.False(t, allowedUploadFile("noext"))
	assert.False(t, allowedUploadFile("trailingdot."))
}

func TestEntityLabel(t *testing.T) {
	assert.Equal(t, "Song: Power", entityLabel("Song", "Power"))
	assert.Equal(t, "Power", entityLabel("", "Power"))
	assert.Equal(t, "Song", entityLabel("Song", ""))
	assert.Equal(t, "", entityLabel("", ""))
}

func TestNewPaginationContext(t *testing.T) {
	c := testContext(t, "http://rt.example.com/users?order=az&page=2")

	ctx := newPaginationContext(c, 2, 10, true, 10)
	assert.Equal(t, 2, ctx.Page)
	assert.Contains(t, ctx.PrevUrl, "page=1")
	assert.Contains(t, ctx.PrevUrl, "order=az")
	assert.Contains(t, ctx.NextUrl, "page=3")
	assert.True(t, ctx.Show)

	// single short page hides the pager
	first := testContext(t, "http://rt.example.com/users")
	ctx = newPaginationContext(first, 1, 10, false, 3)
	assert.Empty(t, ctx.PrevUrl)
	assert.Empty(t, ctx.NextUrl)
	assert.False(t, ctx.Show)
}
