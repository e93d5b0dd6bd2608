package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-gonic/gin"
)

// userCard is the directory/search row shape.
type userCard struct {
	UserId     uint   `json:"user_id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
	Cred       int    `json:"cred"`
}

func userCards(users []model.User) []userCard {
	cards := make([]userCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, userCard{
			UserId:     u.Id,
			Username:   u.Username,
			ProfilePic: u.ProfilePic,
			Cred:       u.Cred,
		})
	}
	return cards
}

var userOrders = map[string]bool{
	"az": true, "za": true, "newest": true, "oldest": true,
	"cred_high": true, "cred_low": true,
}

// UserDirectory lists accounts with the selected sort order.
func (s *Server) UserDirectory(c *gin.Context) {
	order := strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "newest")))
	if !userOrders[order] {
		order = "newest"
	}

	page, perPage, offset := parsePagination(c)
	users, err := s.svc.Users(order, perPage+1, offset)
	if err != nil {
		Log.Error("user directory: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(users) > perPage
	if hasNext {
		users = users[:perPage]
	}

	total, err := s.svc.CountUsers()
	if err != nil {
		Log.Error("count users: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	items := userCards(users)
	c.JSON(http.StatusOK, gin.H{
		"items":        items,
		"total_count":  total,
		"active_order": order,
		"flashes":      popFlashes(c),
		"pagination":   newPaginationContext(c, page, perPage, hasNext, len(items)),
	})
}

// profileView composes the full profile page for a user.
func (s *Server) profileView(c *gin.Context, profileUser *model.User) {
	viewer := s.currentUser(c)
	isOwner := viewer != nil && viewer.Id == profileUser.Id

	comments, err := s.svc.ProfileComments(profileUser.Id, 200, 0)
	if err != nil {
		Log.Error("profile comments: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	ratings, err := s.svc.RatingsByUser(profileUser.Username, 500, 0)
	if err != nil {
		Log.Error("profile ratings: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	favoriteRatings, err := s.svc.LikedRatings(profileUser.Id, 60, 0)
	if err != nil {
		Log.Error("profile favorites: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	playlists, err := s.svc.PlaylistsByCreator(profileUser.Username, 200, 0)
	if err != nil {
		Log.Error("profile playlists: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	followerCount, err := s.svc.FollowerCount(profileUser.Id)
	if err != nil {
		Log.Error("follower count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	followingCount, err := s.svc.FollowingCount(profileUser.Id)
	if err != nil {
		Log.Error("following count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	followers, err := s.svc.Followers(profileUser.Id, 10, 0)
	if err != nil {
		Log.Error("followers: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	following, err := s.svc.Following(profileUser.Id, 10, 0)
	if err != nil {
		Log.Error("following: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	viewerFollows := false
	if viewer != nil && !isOwner {
		viewerFollows, err = s.svc.IsFollowing(viewer.Id, profileUser.Id)
		if err != nil {
			Log.Error("viewer follows: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	profileTab := c.Query("profile_tab")
	if profileTab != "playlists" && profileTab != "favorites" {
		profileTab = "ratings"
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_user": gin.H{
			"user_id":     profileUser.Id,
			"username":    profileUser.Username,
			"about":       profileUser.About,
			"profile_pic": profileUser.ProfilePic,
			"cred":        profileUser.Cred,
		},
		"comments":           comments,
		"profile_ratings":    ratings,
		"profile_playlists":  playlists,
		"favorite_ratings":   favoriteRatings,
		"is_owner":           isOwner,
		"active_profile_tab": profileTab,
		"active_follow_tab":  c.Query("follow_tab"),
		"followers":          userCards(followers),
		"following":          userCards(following),
		"follower_count":     followerCount,
		"following_count":    followingCount,
		"viewer_follows":     viewerFollows,
		"flashes":            popFlashes(c),
	})
}

// Profile shows the logged-in user's own profile.
func (s *Server) Profile(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.profileView(c, user)
}

// UserProfile shows any user's public profile.
func (s *Server) UserProfile(c *gin.Context) {
	profileUser, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("user profile: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if profileUser == nil {
		flash(c, "User not found.", "error")
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.profileView(c, profileUser)
}

// FollowUser creates the follow edge. A fresh follow alerts the followed
// user and logs a follow activity; repeats are silent.
func (s *Server) FollowUser(c *gin.Context) {
	viewer := s.currentUser(c)
	target, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("follow: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if viewer == nil || target == nil || target.Id == viewer.Id {
		redirectBack(c, "/profile")
		return
	}

	changed, err := s.svc.Follow(viewer.Id, target.Id)
	if err != nil {
		Log.Error("follow: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if changed {
		if err := s.svc.CreateAlert(target.Id,
			viewer.Username+" followed you",
			"/user/"+viewer.Username); err != nil {
			Log.Error("follow alert: ", err)
		}
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     viewer.Id,
			ActorName:   viewer.Username,
			Action:      "follow",
			Category:    model.ActivityCategoryUsers,
			EntityType:  "user",
			EntityId:    target.Id,
			EntityLabel: "@" + target.Username,
			Url:         "/user/" + target.Username,
		})
	}

	s.followRedirect(c, target.Username)
}

// UnfollowUser soft-deletes the edge and logs an unfollow activity on a real
// transition.
func (s *Server) UnfollowUser(c *gin.Context) {
	viewer := s.currentUser(c)
	target, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("unfollow: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if viewer == nil || target == nil || target.Id == viewer.Id {
		redirectBack(c, "/profile")
		return
	}

	changed, err := s.svc.Unfollow(viewer.Id, target.Id)
	if err != nil {
		Log.Error("unfollow: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if changed {
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     viewer.Id,
			ActorName:   viewer.Username,
			Action:      "unfollow",
			Category:    model.ActivityCategoryUsers,
			EntityType:  "user",
			EntityId:    target.Id,
			EntityLabel: "@" + target.Username,
			Url:         "/user/" + target.Username,
		})
	}

	s.followRedirect(c, target.Username)
}

func (s *Server) followRedirect(c *gin.Context, username string) {
	tab := c.PostForm("follow_tab")
	if tab == "followers" || tab == "following" {
		c.Redirect(http.StatusFound, fmt.Sprintf("/user/%s?follow_tab=%s", username, tab))
		return
	}
	redirectBack(c, "/user/"+username)
}

// followsPage renders the followers or following listing of a profile.
func (s *Server) followsPage(c *gin.Context, tab string) {
	profileUser, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("follows page: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if profileUser == nil {
		flash(c, "User not found.", "error")
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)

	var users []model.User
	if tab == "following" {
		users, err = s.svc.Following(profileUser.Id, perPage+1, offset)
	} else {
		users, err = s.svc.Followers(profileUser.Id, perPage+1, offset)
	}
	if err != nil {
		Log.Error("follows page: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(users) > perPage
	if hasNext {
		users = users[:perPage]
	}

	followerCount, err := s.svc.FollowerCount(profileUser.Id)
	if err != nil {
		Log.Error("follower count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	followingCount, err := s.svc.FollowingCount(profileUser.Id)
	if err != nil {
		Log.Error("following count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	total := followerCount
	emptyText := "No followers yet."
	if tab == "following" {
		total = followingCount
		emptyText = "Not following anyone yet."
	}

	c.JSON(http.StatusOK, gin.H{
		"title":           "@" + profileUser.Username,
		"active_tab":      tab,
		"users":           userCards(users),
		"follower_count":  followerCount,
		"following_count": followingCount,
		"total_count":     total,
		"empty_text":      emptyText,
		"flashes":         popFlashes(c),
		"pagination":      newPaginationContext(c, page, perPage, hasNext, len(users)),
	})
}

func (s *Server) UserFollowing(c *gin.Context) { s.followsPage(c, "following") }
func (s *Server) UserFollowers(c *gin.Context) { s.followsPage(c, "followers") }

// UserRatings is the paged ratings tab of a profile.
func (s *Server) UserRatings(c *gin.Context) {
	profileUser, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("user ratings: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if profileUser == nil {
		flash(c, "User not found.", "error")
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)
	ratings, err := s.svc.RatingsByUser(profileUser.Username, perPage+1, offset)
	if err != nil {
		Log.Error("user ratings: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(ratings) > perPage
	if hasNext {
		ratings = ratings[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      "@" + profileUser.Username,
		"active_tab": "ratings",
		"ratings":    ratings,
		"empty_text": "No ratings yet.",
		"flashes":    popFlashes(c),
		"pagination": newPaginationContext(c, page, perPage, hasNext, len(ratings)),
	})
}

// UserPlaylists is the paged playlists tab of a profile.
func (s *Server) UserPlaylists(c *gin.Context) {
	profileUser, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("user playlists: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if profileUser == nil {
		flash(c, "User not found.", "error")
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)
	playlists, err := s.svc.PlaylistsByCreator(profileUser.Username, perPage+1, offset)
	if err != nil {
		Log.Error("user playlists: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(playlists) > perPage
	if hasNext {
		playlists = playlists[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      "@" + profileUser.Username,
		"active_tab": "playlists",
		"playlists":  playlists,
		"empty_text": "No playlists yet.",
		"flashes":    popFlashes(c),
		"pagination": newPaginationContext(c, page, perPage, hasNext, len(playlists)),
	})
}

// UserFavorites is the paged liked-ratings tab of a profile.
func (s *Server) UserFavorites(c *gin.Context) {
	profileUser, err := s.svc.UserByUsername(c.Param("username"))
	if err != nil {
		Log.Error("user favorites: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if profileUser == nil {
		flash(c, "User not found.", "error")
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, perPage, offset := parsePagination(c)
	favorites, err := s.svc.LikedRatings(profileUser.Id, perPage+1, offset)
	if err != nil {
		Log.Error("user favorites: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	hasNext := len(favorites) > perPage
	if hasNext {
		favorites = favorites[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      "@" + profileUser.Username,
		"active_tab": "favorites",
		"favorites":  favorites,
		"empty_text": "No favorites yet.",
		"flashes":    popFlashes(c),
		"pagination": newPaginationContext(c, page, perPage, hasNext, len(favorites)),
	})
}

// Favorites is the viewer's liked/favorited/upvoted collection with tabs.
func (s *Server) Favorites(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	tab := strings.ToLower(strings.TrimSpace(c.DefaultQuery("tab", "ratings")))
	if tab != "playlists" && tab != "upvoted" {
		tab = "ratings"
	}

	page, perPage, offset := parsePagination(c)

	var ratings []model.Rating
	var playlists []model.Playlist
	upvotedCategories := map[uint][]string{}
	var err error
	var hasNext bool

	switch tab {
	case "playlists":
		playlists, err = s.svc.FavoritedPlaylists(user.Id, perPage+1, offset)
		if err == nil {
			hasNext = len(playlists) > perPage
			if hasNext {
				playlists = playlists[:perPage]
			}
		}
	case "upvoted":
		ratings, err = s.svc.UpvotedRatings(user.Id, perPage+1, offset)
		if err == nil {
			hasNext = len(ratings) > perPage
			if hasNext {
				ratings = ratings[:perPage]
			}
			ids := make([]uint, 0, len(ratings))
			for _, r := range ratings {
				ids = append(ids, r.Id)
			}
			upvotedCategories, err = s.svc.UpvotedCategories(user.Id, ids)
		}
	default:
		ratings, err = s.svc.LikedRatings(user.Id, perPage+1, offset)
		if err == nil {
			hasNext = len(ratings) > perPage
			if hasNext {
				ratings = ratings[:perPage]
			}
		}
	}
	if err != nil {
		Log.Error("favorites: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	itemCount := len(ratings)
	if tab == "playlists" {
		itemCount = len(playlists)
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":                ratings,
		"playlists":              playlists,
		"upvoted_categories_map": upvotedCategories,
		"active_tab":             tab,
		"flashes":                popFlashes(c),
		"pagination":             newPaginationContext(c, page, perPage, hasNext, itemCount),
	})
}

// ProfileEdit updates username and about, logging a profile_update activity
// on a real change. Empty fields keep their current values.
func (s *Server) ProfileEdit(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := strings.TrimSpace(c.PostForm("username_edit"))
	about := strings.TrimSpace(c.PostForm("about"))
	if username == "" {
		username = user.Username
	}
	if about == "" {
		about = user.About
	}

	if username != user.Username || about != user.About {
		if err := s.svc.UpdateProfileInfo(user.Id, username, about); err != nil {
			Log.Error("profile edit: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     user.Id,
			ActorName:   username,
			Action:      "profile_update",
			Category:    model.ActivityCategoryUsers,
			EntityType:  "user",
			EntityId:    user.Id,
			EntityLabel: "@" + username,
			Url:         "/profile",
		})
	}
	c.Redirect(http.StatusFound, "/profile")
}

// ProfilePicUpload stores the uploaded picture as user_<id>.<ext> and points
// the profile at it.
func (s *Server) ProfilePicUpload(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	file, err := c.FormFile("profile_pic")
	if err != nil || file.Filename == "" {
		flash(c, "No file selected.", "profile")
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	if !allowedUploadFile(file.Filename) {
		flash(c, "Unsupported file type.", "profile")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	src, err := file.Open()
	if err != nil {
		Log.Error("open profile pic: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	defer src.Close()

	key := fmt.Sprintf("user_%d.%s", user.Id, fileExt(file.Filename))
	url, err := s.uploads.Store(key, src)
	if err != nil {
		Log.Error("store profile pic: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := s.svc.UpdateProfilePic(user.Id, url); err != nil {
		Log.Error("update profile pic: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.recordProfileUpdate(user)
	flash(c, "Profile picture updated.", "profile")
	c.Redirect(http.StatusFound, "/profile")
}

// ProfilePicRemove clears the profile picture.
func (s *Server) ProfilePicRemove(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := s.svc.UpdateProfilePic(user.Id, ""); err != nil {
		Log.Error("remove profile pic: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.recordProfileUpdate(user)
	flash(c, "Profile picture removed.", "profile")
	c.Redirect(http.StatusFound, "/profile")
}

func (s *Server) recordProfileUpdate(user *model.User) {
	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      "profile_update",
		Category:    model.ActivityCategoryUsers,
		EntityType:  "user",
		EntityId:    user.Id,
		EntityLabel: "@" + user.Username,
		Url:         "/profile",
	})
}

// ProfileCommentAdd posts a wall comment on the target profile, alerting the
// owner when someone else wrote it.
func (s *Server) ProfileCommentAdd(c *gin.Context) {
	viewer := s.currentUser(c)
	if viewer == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	message := strings.TrimSpace(c.PostForm("comment"))
	if message == "" {
		redirectBack(c, "/profile")
		return
	}

	targetId := viewer.Id
	if raw := strings.TrimSpace(c.PostForm("profile_user_id")); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil && v != 0 {
			targetId = uint(v)
		}
	}

	target, err := s.svc.UserById(targetId)
	if err != nil {
		Log.Error("profile comment add: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if target == nil {
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	if err := s.svc.AddProfileComment(targetId, viewer.Id, message); err != nil {
		Log.Error("profile comment add: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	targetUrl := "/profile"
	if targetId != viewer.Id {
		targetUrl = "/user/" + target.Username
	}
	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     viewer.Id,
		ActorName:   viewer.Username,
		Action:      "profile_comment_add",
		Category:    model.ActivityCategoryUsers,
		EntityType:  "user",
		EntityId:    targetId,
		EntityLabel: "@" + target.Username,
		Url:         targetUrl,
		Metadata:    map[string]interface{}{"message_length": len(message)},
	})

	if targetId != viewer.Id {
		if err := s.svc.CreateAlert(targetId,
			viewer.Username+" commented on your profile",
			"/profile#comments"); err != nil {
			Log.Error("profile comment alert: ", err)
		}
	}

	redirectBack(c, targetUrl)
}

// ProfileCommentEdit rewrites the viewer's own wall comment.
func (s *Server) ProfileCommentEdit(c *gin.Context) {
	viewer := s.currentUser(c)
	if viewer == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	commentId := paramUint(c, "comment")
	message := strings.TrimSpace(c.PostForm("comment"))
	if message != "" {
		changed, err := s.svc.UpdateProfileComment(commentId, viewer.Id, message)
		if err != nil {
			Log.Error("profile comment edit: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if changed {
			s.svc.RecordActivityOrLog(service.ActivityInput{
				ActorId:     viewer.Id,
				ActorName:   viewer.Username,
				Action:      "profile_comment_edit",
				Category:    model.ActivityCategoryUsers,
				EntityType:  "comment",
				EntityId:    commentId,
				EntityLabel: "a profile",
				Url:         safeInternalURL(c, c.Request.Referer(), "/profile"),
				Metadata:    map[string]interface{}{"message_length": len(message)},
			})
		}
	}
	redirectBack(c, "/profile")
}

// ProfileCommentDelete removes the viewer's own wall comment.
func (s *Server) ProfileCommentDelete(c *gin.Context) {
	viewer := s.currentUser(c)
	if viewer == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	commentId := paramUint(c, "comment")
	changed, err := s.svc.DeleteProfileComment(commentId, viewer.Id)
	if err != nil {
		Log.Error("profile comment delete: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if changed {
		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     viewer.Id,
			ActorName:   viewer.Username,
			Action:      "profile_comment_delete",
			Category:    model.ActivityCategoryUsers,
			EntityType:  "comment",
			EntityId:    commentId,
			EntityLabel: "a profile",
			Url:         safeInternalURL(c, c.Request.Referer(), "/profile"),
		})
	}
	redirectBack(c, "/profile")
}
