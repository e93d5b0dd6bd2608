package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/server/middlewares"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionFlashKey   = "flashes"
	sessionPerPageKey = "pagination_per_page"
	sessionDraftKey   = "add_form_draft"

	defaultPerPage = 10
)

var perPageOptions = []int{10, 20, 30, 50, 100}

// flashMessage is one queued notification, shown on the next page load.
type flashMessage struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

func flash(c *gin.Context, message, category string) {
	session := sessions.Default(c)
	session.AddFlash(category+"|"+message, sessionFlashKey)
	if err := session.Save(); err != nil {
		Log.Error("save flash: ", err)
	}
}

// popFlashes drains queued flashes for inclusion in a GET response.
func popFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	raw := session.Flashes(sessionFlashKey)
	if len(raw) > 0 {
		session.Save()
	}

	out := make([]flashMessage, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(s, "|", 2)
		if len(parts) != 2 {
			continue
		}
		out = append(out, flashMessage{Message: parts[1], Category: parts[0]})
	}
	return out
}

// currentUser loads the logged-in user, nil when anonymous or stale session.
func (s *Server) currentUser(c *gin.Context) *model.User {
	userId := middlewares.CurrentUserId(c)
	if userId == 0 {
		return nil
	}
	user, err := s.svc.UserById(userId)
	if err != nil {
		Log.Error("load session user: ", err)
		return nil
	}
	return user
}

// redirectBack sends the browser to the referer when it points at this host,
// otherwise to the fallback path.
func redirectBack(c *gin.Context, fallback string) {
	ref := c.Request.Referer()
	if ref != "" {
		if parsed, err := url.Parse(ref); err == nil && parsed.Host == c.Request.Host {
			c.Redirect(http.StatusFound, ref)
			return
		}
	}
	c.Redirect(http.StatusFound, fallback)
}

// safeInternalURL strips a candidate redirect target down to an internal
// path. Absolute URLs on a different host and non-rooted paths fall back.
func safeInternalURL(c *gin.Context, candidate, fallback string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "/") && !strings.HasPrefix(candidate, "//") {
		return candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return fallback
	}
	if parsed.Host != "" && parsed.Host != c.Request.Host {
		return fallback
	}
	if !strings.HasPrefix(parsed.Path, "/") {
		return fallback
	}

	clean := url.URL{Path: parsed.Path, RawQuery: parsed.RawQuery, Fragment: parsed.Fragment}
	return clean.String()
}

// parsePagination reads page/per_page query params. The per_page choice is
// whitelisted and sticky: an explicit valid value is remembered in the
// session, and later requests without one reuse it.
func parsePagination(c *gin.Context) (page, perPage, offset int) {
	page = 1
	if p, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil && p > 1 {
		page = p
	}

	session := sessions.Default(c)
	rawPerPage, hasPerPage := c.GetQuery("per_page")

	perPage = 0
	if hasPerPage {
		if v, err := strconv.Atoi(strings.TrimSpace(rawPerPage)); err == nil {
			perPage = v
		}
	}
	if perPage == 0 {
		if saved, ok := session.Get(sessionPerPageKey).(int); ok && allowedPerPage(saved) {
			perPage = saved
		}
	}
	if !allowedPerPage(perPage) {
		perPage = defaultPerPage
	}

	if hasPerPage {
		session.Set(sessionPerPageKey, perPage)
		if err := session.Save(); err != nil {
			Log.Error("save per_page preference: ", err)
		}
	}

	return page, perPage, (page - 1) * perPage
}

func allowedPerPage(v int) bool {
	for _, option := range perPageOptions {
		if v == option {
			return true
		}
	}
	return false
}

// paginationContext is the pager block GET pages embed in their JSON.
type paginationContext struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Options []int  `json:"options"`
	PrevUrl string `json:"prev_url,omitempty"`
	NextUrl string `json:"next_url,omitempty"`
	Show    bool   `json:"show"`
}

func newPaginationContext(c *gin.Context, page, perPage int, hasNext bool, itemCount int) paginationContext {
	urlForPage := func(target int) string {
		query := c.Request.URL.Query()
		query.Set("page", strconv.Itoa(target))
		query.Set("per_page", strconv.Itoa(perPage))
		return c.Request.URL.Path + "?" + query.Encode()
	}

	ctx := paginationContext{
		Page:    page,
		PerPage: perPage,
		Options: perPageOptions,
	}
	if page > 1 {
		ctx.PrevUrl = urlForPage(page - 1)
	}
	if hasNext {
		ctx.NextUrl = urlForPage(page + 1)
	}
	ctx.Show = ctx.PrevUrl != "" || ctx.NextUrl != "" || itemCount > defaultPerPage
	return ctx
}

// categoryFromRatingType maps a rating's type onto the activity tab it files
// under.
func categoryFromRatingType(ratingType string) string {
	t := strings.ToLower(strings.TrimSpace(ratingType))
	switch {
	case t == "":
		return model.ActivityCategoryAll
	case strings.Contains(t, "artist"):
		return model.ActivityCategoryArtists
	case strings.Contains(t, "album"):
		return model.ActivityCategoryAlbums
	case strings.Contains(t, "song"), strings.Contains(t, "track"):
		return model.ActivityCategorySongs
	case strings.Contains(t, "genre"):
		return model.ActivityCategoryGenres
	default:
		return model.ActivityCategoryAll
	}
}

var allowedUploadExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

// fileExt returns the lowercase extension without the dot, "" when none.
func fileExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

func allowedUploadFile(filename string) bool {
	return allowedUploadExts[fileExt(filename)]
}

// entityLabel renders the "Type: Name" label activities carry for ratings.
func entityLabel(ratingType, name string) string {
	label := strings.TrimSpace(ratingType) + ": " + strings.TrimSpace(name)
	return strings.Trim(label, ": ")
}
