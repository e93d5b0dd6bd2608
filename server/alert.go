package server

import (
	"net/http"

	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

// alertItem is one rendered mailbox entry.
type alertItem struct {
	Id      uint   `json:"id"`
	Message string `json:"message"`
	Url     string `json:"url"`
	IsRead  bool   `json:"is_read"`
	TimeAgo string `json:"time_ago"`
}

// Alerts lists the viewer's mailbox, read and unread, newest first.
func (s *Server) Alerts(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)
	rows, err := s.svc.Alerts(user.Id, true, perPage+1, offset)
	if err != nil {
		Log.Error("alerts: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(rows) > perPage
	if hasNext {
		rows = rows[:perPage]
	}

	now := s.svc.Now()
	items := make([]alertItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, alertItem{
			Id:      row.Id,
			Message: row.Message,
			Url:     row.Url,
			IsRead:  row.IsRead,
			TimeAgo: service.TimeAgo(row.CreatedAt, now),
		})
	}

	unread, err := s.svc.UnreadAlertCount(user.Id)
	if err != nil {
		Log.Error("unread alert count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":              items,
		"unread_alert_count": unread,
		"flashes":            popFlashes(c),
		"pagination":         newPaginationContext(c, page, perPage, hasNext, len(items)),
	})
}

// AlertGo marks the alert read and redirects to its target, sanitized to an
// internal path.
func (s *Server) AlertGo(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	alertId := paramUint(c, "id")
	next := c.Query("next")

	alert, err := s.svc.AlertForUser(alertId, user.Id)
	if err != nil {
		Log.Error("alert go: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if alert == nil {
		flash(c, "Alert not found.", "error")
		c.Redirect(http.StatusFound, safeInternalURL(c, next, "/"))
		return
	}

	if err := s.svc.MarkAlertRead(alertId, user.Id); err != nil {
		Log.Error("mark alert read: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	dest := alert.Url
	if dest == "" {
		dest = next
	}
	c.Redirect(http.StatusFound, safeInternalURL(c, dest, "/"))
}

// AlertDelete removes one of the viewer's alerts.
func (s *Server) AlertDelete(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	alertId := paramUint(c, "id")
	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}

	alert, err := s.svc.AlertForUser(alertId, user.Id)
	if err != nil {
		Log.Error("alert delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if alert == nil {
		flash(c, "Alert not found.", "error")
		c.Redirect(http.StatusFound, safeInternalURL(c, next, "/alerts"))
		return
	}

	if err := s.svc.DeleteAlert(alertId, user.Id); err != nil {
		Log.Error("alert delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	flash(c, "Alert deleted.", "success")
	c.Redirect(http.StatusFound, safeInternalURL(c, next, "/alerts"))
}
