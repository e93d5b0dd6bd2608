package server

import (
	"net/http"
	"strings"

	"github.com/DarrenRF/rt/server/middlewares"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func setAuthMode(c *gin.Context, mode string) {
	session := sessions.Default(c)
	session.Set(middlewares.SessionAuthModeKey, mode)
	if err := session.Save(); err != nil {
		Log.Error("save auth mode: ", err)
	}
}

// AuthLoginMode opens the auth panel in login mode and bounces back.
func (s *Server) AuthLoginMode(c *gin.Context) {
	setAuthMode(c, "login")
	redirectBack(c, "/")
}

// AuthSignupMode opens the auth panel in signup mode and bounces back.
func (s *Server) AuthSignupMode(c *gin.Context) {
	setAuthMode(c, "signup")
	redirectBack(c, "/")
}

// Signup registers an account and logs it in. Validation failures flash and
// bounce back with the panel kept in signup mode.
func (s *Server) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if username == "" || email == "" || password == "" || password != confirm {
		flash(c, "Please complete all fields and ensure passwords match.", "error")
		setAuthMode(c, "signup")
		redirectBack(c, "/")
		return
	}

	user, err := s.svc.CreateUser(username, email, password)
	if errors.Is(err, service.ErrIdentifierTaken) {
		flash(c, "That username or email is already taken.", "error")
		setAuthMode(c, "signup")
		redirectBack(c, "/")
		return
	}
	if err != nil {
		Log.Error("signup: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.loginSession(c, user.Id)
}

// Login authenticates by username or email and starts a session.
func (s *Server) Login(c *gin.Context) {
	identifier := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := s.svc.Authenticate(identifier, password)
	if err != nil {
		Log.Error("login: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user == nil {
		flash(c, "Invalid username/email or password.", "error")
		setAuthMode(c, "login")
		redirectBack(c, "/")
		return
	}

	s.loginSession(c, user.Id)
}

// loginSession stores the user id, consumes any remembered next_url and
// lands on it, defaulting to /browse.
func (s *Server) loginSession(c *gin.Context, userId uint) {
	session := sessions.Default(c)
	session.Set(middlewares.SessionUserKey, userId)

	dest := "/browse"
	if next, ok := session.Get(middlewares.SessionNextURLKey).(string); ok {
		if strings.HasPrefix(next, "/") {
			dest = next
		}
	}
	session.Delete(middlewares.SessionNextURLKey)
	session.Delete(middlewares.SessionAuthModeKey)
	if err := session.Save(); err != nil {
		Log.Error("save login session: ", err)
	}

	c.Redirect(http.StatusFound, dest)
}

func (s *Server) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		Log.Error("save logout session: ", err)
	}
	c.Redirect(http.StatusFound, "/")
}
