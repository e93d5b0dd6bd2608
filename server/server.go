// Package server is the HTTP surface: gin routes over the service layer.
// GET pages respond with composed view data as JSON; mutating POST routes
// flash a message into the session and redirect, keeping the original
// browser-form flow.
package server

import (
	"encoding/gob"

	"github.com/DarrenRF/rt/server/filestore"
	"github.com/DarrenRF/rt/server/middlewares"
	"github.com/DarrenRF/rt/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func init() {
	// The cookie store gob-encodes session values; the draft form is a map.
	gob.Register(map[string]string{})
}

type Server struct {
	svc     *service.Service
	uploads filestore.UploadStore
}

func New(svc *service.Service, uploads filestore.UploadStore) *Server {
	return &Server{svc: svc, uploads: uploads}
}

// NewRouter builds the gin engine with sessions, CORS and every route bound.
// When the upload store is local its root is also mounted as static content,
// including the legacy /static/uploads alias old rows still point at.
func (s *Server) NewRouter(secretKey string) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	store := cookie.NewStore([]byte(secretKey))
	router.Use(sessions.Sessions("rt_session", store))

	if local, ok := s.uploads.(*filestore.LocalFileStore); ok {
		router.Static("/uploads", local.Root())
		router.Static("/static/uploads", local.Root())
	}

	router.GET("/", s.Index)
	router.GET("/browse", s.Browse)
	router.GET("/search", s.Search)
	router.GET("/users", s.UserDirectory)
	router.GET("/charts", s.Charts)
	router.GET("/genres", s.Genres)

	router.GET("/auth", s.AuthLoginMode)
	router.GET("/auth/login", s.AuthLoginMode)
	router.GET("/auth/signup", s.AuthSignupMode)
	router.POST("/signup", s.Signup)
	router.POST("/login", s.Login)

	router.GET("/rating/:key", s.RatingDetail)
	router.GET("/user/:username", s.UserProfile)
	router.GET("/user/:username/following", s.UserFollowing)
	router.GET("/user/:username/followers", s.UserFollowers)
	router.GET("/user/:username/ratings", s.UserRatings)
	router.GET("/user/:username/playlists", s.UserPlaylists)
	router.GET("/user/:username/favorites", s.UserFavorites)

	auth := router.Group("/", middlewares.LoginRequired())
	{
		auth.GET("/logout", s.Logout)

		auth.GET("/favorites", s.Favorites)
		auth.GET("/activity", s.Activity)
		auth.POST("/activity/:id/dismiss", s.ActivityDismiss)
		auth.POST("/activity/clear", s.ActivityClear)

		auth.GET("/alerts", s.Alerts)
		auth.GET("/alerts/:id/go", s.AlertGo)
		auth.POST("/alerts/:id/delete", s.AlertDelete)

		auth.GET("/bulletin", s.Bulletin)
		auth.POST("/bulletin", s.BulletinPost)
		auth.GET("/bulletin/:key", s.BulletinDetail)
		auth.POST("/bulletin/:key/delete", s.BulletinDelete)

		auth.GET("/playlists", s.Playlists)
		auth.POST("/playlists/create", s.PlaylistCreate)
		auth.GET("/playlists/:key", s.PlaylistDetail)
		auth.POST("/playlists/:key/favorite", s.PlaylistFavorite)
		auth.POST("/playlists/:key/delete", s.PlaylistDelete)
		auth.POST("/playlists/:key/songs", s.PlaylistAddSong)
		auth.POST("/playlists/:key/songs/new", s.PlaylistAddNewSong)
		auth.POST("/playlists/:key/songs/:song/delete", s.PlaylistRemoveSong)

		auth.GET("/add", s.AddRatingForm)
		auth.POST("/add", s.AddRating)
		auth.GET("/edit/:key", s.EditRatingForm)
		auth.POST("/edit/:key", s.EditRating)
		auth.POST("/delete/:key", s.DeleteRating)

		auth.POST("/rating/:key/category-vote", s.RatingCategoryVote)
		auth.POST("/rating/:key/like", s.RatingLike)
		auth.POST("/rating/:key/comments", s.RatingCommentAdd)
		auth.POST("/rating/:key/comments/edit/:comment", s.RatingCommentEdit)
		auth.POST("/rating/:key/comments/delete/:comment", s.RatingCommentDelete)

		auth.GET("/profile", s.Profile)
		auth.POST("/profile-edit", s.ProfileEdit)
		auth.POST("/profile/upload", s.ProfilePicUpload)
		auth.POST("/profile/remove", s.ProfilePicRemove)
		auth.POST("/profile/comments", s.ProfileCommentAdd)
		auth.POST("/profile/comments/edit/:comment", s.ProfileCommentEdit)
		auth.POST("/profile/comments/delete/:comment", s.ProfileCommentDelete)

		auth.POST("/user/:username/follow", s.FollowUser)
		auth.POST("/user/:username/unfollow", s.UnfollowUser)
	}

	return router
}
