package server

import (
	"net/http"
	"strings"

	"github.com/DarrenRF/rt/model"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

var searchTabs = []string{"all", "users", "playlists", "ratings"}

// Search runs the site-wide search across users, playlists and ratings. The
// "all" tab shows a slice of each; the focused tabs paginate their own kind.
func (s *Server) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	tab := strings.ToLower(strings.TrimSpace(c.DefaultQuery("tab", "all")))
	found := false
	for _, t := range searchTabs {
		if t == tab {
			found = true
			break
		}
	}
	if !found {
		tab = "all"
	}

	page, perPage, offset := parsePagination(c)

	var users []model.User
	var playlists []model.Playlist
	var ratings []model.Rating
	var err error
	hasNext := false

	if query != "" {
		if tab == "all" || tab == "users" {
			limit, off := perPage+1, offset
			if tab == "all" {
				limit, off = 10, 0
			}
			users, err = s.svc.SearchUsers(query, limit, off)
			if err != nil {
				Log.Error("search users: ", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			if tab == "users" && len(users) > perPage {
				hasNext = true
				users = users[:perPage]
			}
		}
		if tab == "all" || tab == "playlists" {
			limit, off := perPage+1, offset
			if tab == "all" {
				limit, off = 10, 0
			}
			playlists, err = s.svc.SearchPlaylists(query, limit, off)
			if err != nil {
				Log.Error("search playlists: ", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			if tab == "playlists" && len(playlists) > perPage {
				hasNext = true
				playlists = playlists[:perPage]
			}
		}
		if tab == "all" || tab == "ratings" {
			limit, off := perPage+1, offset
			if tab == "all" {
				limit, off = 10, 0
			}
			ratings, err = s.svc.SearchRatings(query, limit, off)
			if err != nil {
				Log.Error("search ratings: ", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			if tab == "ratings" && len(ratings) > perPage {
				hasNext = true
				ratings = ratings[:perPage]
			}
		}
	}

	itemCount := len(users) + len(playlists) + len(ratings)
	c.JSON(http.StatusOK, gin.H{
		"q":          query,
		"tabs":       searchTabs,
		"active_tab": tab,
		"users":      userCards(users),
		"playlists":  playlists,
		"ratings":    ratings,
		"flashes":    popFlashes(c),
		"pagination": newPaginationContext(c, page, perPage, hasNext, itemCount),
	})
}
