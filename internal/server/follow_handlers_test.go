package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_ShowsAuthorAndCounts(t *testing.T) {
	app, s := newTestApp(t)
	author := createTestUser(t, "profauthor", "pw-prof-1")
	reader := createTestUser(t, "profreader", "pw-prof-2")
	createTestPost(t, author.ID, "profile post")
	require.NoError(t, testDB.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	req := httptest.NewRequest(http.MethodGet, "/profile/"+author.Username, nil)
	req.AddCookie(loginAs(t, s, reader.ID))
	resp := doRequest(t, app, req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		View   string `json:"view"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		Followers   int64 `json:"followers"`
		Following   int64 `json:"following"`
		IsFollowing bool  `json:"is_following"`
		Posts       []models.Post
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "profile", body.View)
	assert.Equal(t, author.Username, body.Author.Username)
	assert.EqualValues(t, 1, body.Followers)
	assert.True(t, body.IsFollowing)

	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/profile/nobody-here", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowFeed_TracksSubscriptions(t *testing.T) {
	app, s := newTestApp(t)
	reader := createTestUser(t, "feedreader", "pw-feed-1")
	author := createTestUser(t, "feedauthor", "pw-feed-2")
	post := createTestPost(t, author.ID, "feed post")
	cookie := loginAs(t, s, reader.ID)

	feed := func() pageEnvelope {
		req := httptest.NewRequest(http.MethodGet, "/follow", nil)
		req.AddCookie(cookie)
		resp := doRequest(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodePage(t, resp)
	}

	env := feed()
	assert.Equal(t, "follow_feed", env.View)
	assert.Empty(t, env.Posts, "feed starts empty before following anyone")

	req := newFormRequest(http.MethodPost, "/profile/"+author.Username+"/follow", nil)
	req.AddCookie(cookie)
	resp := doRequest(t, app, req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/"+author.Username, resp.Header.Get("Location"))

	env = feed()
	require.Len(t, env.Posts, 1)
	assert.Equal(t, post.ID, env.Posts[0].ID)

	req = newFormRequest(http.MethodPost, "/profile/"+author.Username+"/unfollow", nil)
	req.AddCookie(cookie)
	resp = doRequest(t, app, req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	env = feed()
	assert.Empty(t, env.Posts, "unfollowing empties the feed again")
}

func TestFollow_SelfAndDuplicateAreQuietNoOps(t *testing.T) {
	app, s := newTestApp(t)
	reader := createTestUser(t, "quietfollow", "pw-q-1")
	author := createTestUser(t, "quietauthor", "pw-q-2")
	cookie := loginAs(t, s, reader.ID)

	t.Run("self follow just redirects", func(t *testing.T) {
		req := newFormRequest(http.MethodPost, "/profile/"+reader.Username+"/follow", nil)
		req.AddCookie(cookie)
		resp := doRequest(t, app, req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

		var count int64
		require.NoError(t, testDB.Model(&models.Follow{}).Where("user_id = ?", reader.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("double follow keeps a single row", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req := newFormRequest(http.MethodPost, "/profile/"+author.Username+"/follow", nil)
			req.AddCookie(cookie)
			resp := doRequest(t, app, req)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		}

		var count int64
		require.NoError(t, testDB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", reader.ID, author.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
