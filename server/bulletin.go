package server

import (
	"net/http"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

// bulletinItem is one rendered board entry.
type bulletinItem struct {
	Id       uint   `json:"id"`
	Author   string `json:"author"`
	AuthorId uint   `json:"author_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	TimeAgo  string `json:"time_ago"`
}

func (s *Server) bulletinItems(rows []model.BulletinPost) []bulletinItem {
	now := s.svc.Now()
	items := make([]bulletinItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, bulletinItem{
			Id:       row.Id,
			Author:   row.AuthorUsername,
			AuthorId: row.AuthorId,
			Title:    row.Title,
			Message:  row.Message,
			Type:     row.Type,
			TimeAgo:  service.TimeAgo(row.CreatedAt, now),
		})
	}
	return items
}

// Bulletin lists board posts visible to the viewer.
func (s *Server) Bulletin(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)
	rows, err := s.svc.BulletinFeed(user.Id, perPage+1, offset)
	if err != nil {
		Log.Error("bulletin feed: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(rows) > perPage
	if hasNext {
		rows = rows[:perPage]
	}

	total, err := s.svc.CountBulletinFeed(user.Id)
	if err != nil {
		Log.Error("bulletin count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	items := s.bulletinItems(rows)
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": total,
		"flashes":     popFlashes(c),
		"pagination":  newPaginationContext(c, page, perPage, hasNext, len(items)),
	})
}

// BulletinPost creates a board post from the submitted form and logs a
// bulletin_post activity.
func (s *Server) BulletinPost(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	message := strings.TrimSpace(c.PostForm("message"))
	postType := strings.ToLower(strings.TrimSpace(c.PostForm("type")))

	if message == "" {
		flash(c, "Bulletin message cannot be empty.", "error")
		redirectBack(c, "/")
		return
	}
	if len(title) > 80 {
		flash(c, "Bulletin title is too long (max 80 characters).", "error")
		redirectBack(c, "/")
		return
	}
	if len(message) > 500 {
		flash(c, "Bulletin message is too long (max 500 characters).", "error")
		redirectBack(c, "/")
		return
	}

	post, err := s.svc.CreateBulletinPost(user.Id, user.Username, title, message, postType)
	if err != nil {
		Log.Error("create bulletin post: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if post != nil {
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:    user.Id,
			ActorName:  user.Username,
			Action:     "bulletin_post",
			Category:   model.ActivityCategoryUsers,
			EntityType: "bulletin",
			EntityId:   post.Id,
			Url:        safeInternalURL(c, c.Request.Referer(), "/"),
			Metadata: map[string]interface{}{
				"message_length": len(message),
				"title_length":   len(title),
				"type":           post.Type,
			},
		})
	}

	if next := strings.TrimSpace(c.PostForm("next")); strings.HasPrefix(next, "/") {
		c.Redirect(http.StatusFound, next)
		return
	}
	redirectBack(c, "/")
}

// BulletinDetail shows one post under feed visibility rules.
func (s *Server) BulletinDetail(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := s.svc.BulletinPostForViewer(user.Id, paramUint(c, "key"))
	if err != nil {
		Log.Error("bulletin detail: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if post == nil {
		flash(c, "Bulletin post not found.", "error")
		c.Redirect(http.StatusFound, "/bulletin")
		return
	}

	items := s.bulletinItems([]model.BulletinPost{*post})
	c.JSON(http.StatusOK, gin.H{
		"post":    items[0],
		"flashes": popFlashes(c),
	})
}

// BulletinDelete removes the viewer's own post.
func (s *Server) BulletinDelete(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ok, err := s.svc.DeleteBulletinPost(paramUint(c, "key"), user.Id)
	if err != nil {
		Log.Error("bulletin delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if ok {
		flash(c, "Bulletin post deleted.", "success")
	} else {
		flash(c, "You can only delete your own bulletin posts.", "error")
	}

	if next := strings.TrimSpace(c.PostForm("next")); strings.HasPrefix(next, "/") {
		c.Redirect(http.StatusFound, next)
		return
	}
	redirectBack(c, "/")
}
