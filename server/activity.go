package server

import (
	"net/http"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

var activityTabs = []string{
	model.ActivityCategoryAll,
	model.ActivityCategoryUsers,
	model.ActivityCategoryArtists,
	model.ActivityCategoryAlbums,
	model.ActivityCategorySongs,
	model.ActivityCategoryGenres,
}

func activityTab(raw string) string {
	tab := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range activityTabs {
		if tab == known {
			return tab
		}
	}
	return model.ActivityCategoryAll
}

// activityItem is one rendered feed entry.
type activityItem struct {
	Id      uint   `json:"id"`
	Text    string `json:"text"`
	Url     string `json:"url"`
	TimeAgo string `json:"time_ago"`
}

// Activity renders the viewer's feed for the requested category tab.
func (s *Server) Activity(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	tab := activityTab(c.Query("tab"))
	page, perPage, offset := parsePagination(c)

	rows, err := s.svc.ActivityFeed(user.Id, tab, perPage+1, offset)
	if err != nil {
		Log.Error("activity feed: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(rows) > perPage
	if hasNext {
		rows = rows[:perPage]
	}

	now := s.svc.Now()
	items := make([]activityItem, 0, len(rows))
	for i := range rows {
		items = append(items, activityItem{
			Id:      rows[i].Id,
			Text:    service.ActivityText(&rows[i]),
			Url:     rows[i].Url,
			TimeAgo: service.TimeAgo(rows[i].CreatedAt, now),
		})
	}

	total, err := s.svc.CountActivityFeed(user.Id, tab)
	if err != nil {
		Log.Error("activity count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tabs":        activityTabs,
		"active_tab":  tab,
		"items":       items,
		"total_count": total,
		"flashes":     popFlashes(c),
		"pagination":  newPaginationContext(c, page, perPage, hasNext, len(items)),
	})
}

// ActivityDismiss hides one feed entry for the viewer and bounces to the
// caller-provided internal target.
func (s *Server) ActivityDismiss(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := s.svc.DismissActivity(user.Id, paramUint(c, "id")); err != nil {
		Log.Error("dismiss activity: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, safeInternalURL(c, c.PostForm("next"), "/activity"))
}

// ActivityClear sets the viewer's clear mark for the posted tab.
func (s *Server) ActivityClear(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	tab := activityTab(c.PostForm("tab"))
	if err := s.svc.ClearActivity(user.Id, tab); err != nil {
		Log.Error("clear activity: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, safeInternalURL(c, c.PostForm("next"), "/activity"))
}
