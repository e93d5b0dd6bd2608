package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

// RatingCommentAdd posts a comment under a rating, alerting the rating's
// owner when someone else wrote it.
func (s *Server) RatingCommentAdd(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	ratingUrl := fmt.Sprintf("/rating/%d", ratingId)

	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("rating comment add: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil {
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	message := strings.TrimSpace(c.PostForm("comment"))
	if message == "" {
		c.Redirect(http.StatusFound, ratingUrl+"#comments")
		return
	}

	if err := s.svc.AddRatingComment(ratingId, user.Id, message); err != nil {
		Log.Error("rating comment add: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      "rating_comment_add",
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    ratingId,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         ratingUrl + "#comments",
		Metadata:    map[string]interface{}{"message_length": len(message)},
	})

	if !strings.EqualFold(rating.Username, user.Username) {
		owner, err := s.svc.UserByUsername(rating.Username)
		if err != nil {
			Log.Error("rating comment alert: ", err)
		} else if owner != nil {
			if err := s.svc.CreateAlert(owner.Id,
				user.Username+" commented on your rating",
				ratingUrl+"#comments"); err != nil {
				Log.Error("rating comment alert: ", err)
			}
		}
	}

	c.Redirect(http.StatusFound, ratingUrl+"#comments")
}

// RatingCommentEdit rewrites the viewer's own comment.
func (s *Server) RatingCommentEdit(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	commentId := paramUint(c, "comment")
	ratingUrl := fmt.Sprintf("/rating/%d", ratingId)

	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("rating comment edit: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil {
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	message := strings.TrimSpace(c.PostForm("comment"))
	if message != "" {
		changed, err := s.svc.UpdateRatingComment(commentId, user.Id, message)
		if err != nil {
			Log.Error("rating comment edit: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if changed {
			s.svc.RecordActivityOrLog(service.ActivityInput{
				ActorId:     user.Id,
				ActorName:   user.Username,
				Action:      "rating_comment_edit",
				Category:    categoryFromRatingType(rating.Type),
				EntityType:  "comment",
				EntityId:    commentId,
				EntityLabel: entityLabel(rating.Type, rating.Name),
				Url:         ratingUrl + "#comments",
			})
		}
	}
	c.Redirect(http.StatusFound, ratingUrl+"#comments")
}

// RatingCommentDelete removes the viewer's own comment.
func (s *Server) RatingCommentDelete(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	commentId := paramUint(c, "comment")
	ratingUrl := fmt.Sprintf("/rating/%d", ratingId)

	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("rating comment delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil {
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	changed, err := s.svc.DeleteRatingComment(commentId, user.Id)
	if err != nil {
		Log.Error("rating comment delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if changed {
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     user.Id,
			ActorName:   user.Username,
			Action:      "rating_comment_delete",
			Category:    categoryFromRatingType(rating.Type),
			EntityType:  "comment",
			EntityId:    commentId,
			EntityLabel: entityLabel(rating.Type, rating.Name),
			Url:         ratingUrl + "#comments",
		})
	}
	c.Redirect(http.StatusFound, ratingUrl+"#comments")
}
