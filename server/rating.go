package server

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/service"
	. "github.com/DarrenRF/rt/utils/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func paramUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// Index lists ratings for the landing page, recent or oldest first.
func (s *Server) Index(c *gin.Context) {
	order := strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "recent")))
	if order != "oldest" {
		order = "recent"
	}

	page, perPage, offset := parsePagination(c)
	ratings, err := s.svc.Ratings(order, perPage+1, offset)
	if err != nil {
		Log.Error("index: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	hasNext := len(ratings) > perPage
	if hasNext {
		ratings = ratings[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":      ratings,
		"active_order": order,
		"flashes":      popFlashes(c),
		"pagination":   newPaginationContext(c, page, perPage, hasNext, len(ratings)),
	})
}

// browseTypes maps the browse tab key onto the stored rating type.
var browseTypes = map[string]string{
	"songs":   model.RatingTypeSong,
	"albums":  model.RatingTypeAlbum,
	"artists": model.RatingTypeArtist,
}

// Browse lists ratings filtered by type tab.
func (s *Server) Browse(c *gin.Context) {
	activeType := strings.ToLower(strings.TrimSpace(c.DefaultQuery("type", "all")))
	if _, ok := browseTypes[activeType]; !ok {
		activeType = "all"
	}
	order := strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "recent")))
	if order != "oldest" {
		order = "recent"
	}

	page, perPage, offset := parsePagination(c)

	var ratings []model.Rating
	var err error
	if ratingType, ok := browseTypes[activeType]; ok {
		ratings, err = s.svc.RatingsByType(ratingType, order, perPage+1, offset)
	} else {
		ratings, err = s.svc.Ratings(order, perPage+1, offset)
	}
	if err != nil {
		Log.Error("browse: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	hasNext := len(ratings) > perPage
	if hasNext {
		ratings = ratings[:perPage]
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings":      ratings,
		"active_type":  activeType,
		"active_order": order,
		"flashes":      popFlashes(c),
		"pagination":   newPaginationContext(c, page, perPage, hasNext, len(ratings)),
	})
}

// Charts is a placeholder page of the original navigation.
func (s *Server) Charts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flashes": popFlashes(c)})
}

// Genres is a placeholder page of the original navigation.
func (s *Server) Genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flashes": popFlashes(c)})
}

// RatingDetail shows one rating with votes, likes and comments. A logged-in
// view logs a deduplicated rating_view activity.
func (s *Server) RatingDetail(c *gin.Context) {
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("rating detail: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		return
	}

	user := s.currentUser(c)

	liked := false
	userVotes := map[string]int{}
	if user != nil {
		liked, err = s.svc.IsRatingLiked(ratingId, user.Id)
		if err == nil {
			userVotes, err = s.svc.UserCategoryVotes(ratingId, user.Id)
		}
		if err != nil {
			Log.Error("rating detail viewer state: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		s.svc.RecordActivityOrLog(service.ActivityInput{
			ActorId:     user.Id,
			ActorName:   user.Username,
			Action:      "rating_view",
			Category:    categoryFromRatingType(rating.Type),
			EntityType:  "rating",
			EntityId:    ratingId,
			EntityLabel: entityLabel(rating.Type, rating.Name),
			Url:         fmt.Sprintf("/rating/%d", ratingId),
			Metadata:    map[string]interface{}{"owner": rating.Username},
		})
	}

	summary, err := s.svc.CategoryVoteSummaries(ratingId)
	if err != nil {
		Log.Error("rating detail vote summary: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	likeCount, err := s.svc.RatingLikeCount(ratingId)
	if err != nil {
		Log.Error("rating detail like count: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	comments, err := s.svc.RatingComments(ratingId)
	if err != nil {
		Log.Error("rating detail comments: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ownerPic, err := s.svc.ProfilePicByUsername(rating.Username)
	if err != nil {
		Log.Error("rating detail owner pic: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rating":                rating,
		"owner":                 rating.Username,
		"owner_pic":             ownerPic,
		"liked":                 liked,
		"like_count":            likeCount,
		"category_vote_summary": summary,
		"user_category_votes":   userVotes,
		"can_category_vote":     user != nil,
		"comments":              comments,
		"flashes":               popFlashes(c),
	})
}

// ratingForm is the posted add/edit payload.
type ratingForm struct {
	Type          string
	Name          string
	Scores        map[string]string
	Reasons       map[string]string
	MissingFields []string
	ParsedScores  map[string]int
}

func readRatingForm(c *gin.Context) ratingForm {
	form := ratingForm{
		Type:         strings.TrimSpace(c.PostForm("rating_type")),
		Name:         strings.TrimSpace(c.PostForm("rating_name")),
		Scores:       map[string]string{},
		Reasons:      map[string]string{},
		ParsedScores: map[string]int{},
	}

	if form.Type == "" {
		form.MissingFields = append(form.MissingFields, "Rating Type")
	}
	if form.Name == "" {
		form.MissingFields = append(form.MissingFields, "Name")
	}
	for _, category := range model.RatingCategories {
		field := strings.ToLower(category)
		raw := strings.TrimSpace(c.PostForm(field))
		form.Scores[category] = raw
		form.Reasons[category] = strings.TrimSpace(c.PostForm(field + "_reason"))
		if raw == "" {
			form.MissingFields = append(form.MissingFields, category)
			continue
		}
		if v, err := strconv.Atoi(raw); err == nil {
			form.ParsedScores[category] = v
		}
	}
	return form
}

func (f ratingForm) apply(r *model.Rating) {
	r.Type = f.Type
	r.Name = f.Name
	r.LyricsScore = f.ParsedScores["Lyrics"]
	r.LyricsReason = f.Reasons["Lyrics"]
	r.BeatScore = f.ParsedScores["Beat"]
	r.BeatReason = f.Reasons["Beat"]
	r.FlowScore = f.ParsedScores["Flow"]
	r.FlowReason = f.Reasons["Flow"]
	r.MelodyScore = f.ParsedScores["Melody"]
	r.MelodyReason = f.Reasons["Melody"]
	r.CohesiveScore = f.ParsedScores["Cohesive"]
	r.CohesiveReason = f.Reasons["Cohesive"]
}

// stashDraft keeps the submitted form in the session so a failed submit does
// not lose the user's text.
func stashDraft(c *gin.Context, form ratingForm) {
	draft := map[string]string{
		"rating_type": form.Type,
		"rating_name": form.Name,
	}
	for _, category := range model.RatingCategories {
		field := strings.ToLower(category)
		draft[field] = form.Scores[category]
		draft[field+"_reason"] = form.Reasons[category]
	}

	session := sessions.Default(c)
	session.Set(sessionDraftKey, draft)
	if err := session.Save(); err != nil {
		Log.Error("save form draft: ", err)
	}
}

// AddRatingForm returns the add page data, restoring any stashed draft.
func (s *Server) AddRatingForm(c *gin.Context) {
	session := sessions.Default(c)
	draft := session.Get(sessionDraftKey)
	if draft != nil {
		session.Delete(sessionDraftKey)
		session.Save()
	}
	c.JSON(http.StatusOK, gin.H{
		"form_action": "/add",
		"draft":       draft,
		"flashes":     popFlashes(c),
	})
}

// AddRating creates a rating from the posted form, optionally storing an
// uploaded artwork image, and logs a rating_create activity.
func (s *Server) AddRating(c *gin.Context) {
	user := s.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	form := readRatingForm(c)
	if len(form.MissingFields) > 0 {
		stashDraft(c, form)
		flash(c, "Please complete the rating before submitting.\nMissing: "+
			strings.Join(form.MissingFields, ", "), "error")
		c.Redirect(http.StatusFound, "/add")
		return
	}

	imageUrl := ""
	if file, err := c.FormFile("rating_image"); err == nil && file.Filename != "" {
		if !allowedUploadFile(file.Filename) {
			stashDraft(c, form)
			flash(c, "Unsupported image file type.", "error")
			c.Redirect(http.StatusFound, "/add")
			return
		}
		imageUrl, err = s.storeRatingImage(user.Id, form.Name, file)
		if err != nil {
			Log.Error("store rating image: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	rating := model.Rating{Username: user.Username, ImageUrl: imageUrl}
	form.apply(&rating)
	if err := s.svc.CreateRating(&rating); err != nil {
		Log.Error("create rating: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      "rating_create",
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    rating.Id,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         fmt.Sprintf("/rating/%d", rating.Id),
	})

	sessions.Default(c).Delete(sessionDraftKey)
	sessions.Default(c).Save()
	c.Redirect(http.StatusFound, "/browse")
}

// storeRatingImage writes the uploaded artwork under ratings/ with a unique
// filename and returns its servable URL.
func (s *Server) storeRatingImage(userId uint, name string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	base := sanitizeFilename(name)
	if base == "" {
		base = "rating"
	}
	key := fmt.Sprintf("ratings/rating_%d_%s_%s.%s",
		userId, uuid.New().String(), base, fileExt(file.Filename))
	return s.uploads.Store(key, src)
}

// EditRatingForm returns the edit page data for the owner.
func (s *Server) EditRatingForm(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("edit rating form: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil || !strings.EqualFold(rating.Username, user.Username) {
		flash(c, "You can only edit your own ratings.", "error")
		c.Redirect(http.StatusFound, "/browse")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form_action": fmt.Sprintf("/edit/%d", ratingId),
		"rating":      rating,
		"flashes":     popFlashes(c),
	})
}

// EditRating applies the posted form to the owner's rating and logs a
// rating_edit activity.
func (s *Server) EditRating(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("edit rating: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil || !strings.EqualFold(rating.Username, user.Username) {
		flash(c, "You can only edit your own ratings.", "error")
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	form := readRatingForm(c)
	if len(form.MissingFields) > 0 {
		flash(c, "Please complete the rating before submitting.\nMissing: "+
			strings.Join(form.MissingFields, ", "), "error")
		c.Redirect(http.StatusFound, fmt.Sprintf("/edit/%d", ratingId))
		return
	}

	if file, err := c.FormFile("rating_image"); err == nil && file.Filename != "" {
		if !allowedUploadFile(file.Filename) {
			flash(c, "Unsupported image file type.", "error")
			c.Redirect(http.StatusFound, fmt.Sprintf("/edit/%d", ratingId))
			return
		}
		url, err := s.storeRatingImage(user.Id, form.Name, file)
		if err != nil {
			Log.Error("store rating image: ", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		rating.ImageUrl = url
	}

	form.apply(rating)
	if err := s.svc.UpdateRating(rating); err != nil {
		Log.Error("update rating: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      "rating_edit",
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    ratingId,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         fmt.Sprintf("/rating/%d", ratingId),
	})

	c.Redirect(http.StatusFound, fmt.Sprintf("/rating/%d", ratingId))
}

// DeleteRating removes the owner's rating with its child rows and logs a
// rating_delete activity.
func (s *Server) DeleteRating(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("delete rating: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil || !strings.EqualFold(rating.Username, user.Username) {
		flash(c, "You can only delete your own ratings.", "error")
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	if err := s.svc.DeleteRating(ratingId); err != nil {
		Log.Error("delete rating: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      "rating_delete",
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    ratingId,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         "/browse",
	})

	flash(c, "Rating deleted.", "success")
	c.Redirect(http.StatusFound, "/browse")
}

// RatingCategoryVote applies the vote toggle cycle for one category and logs
// the matching activity.
func (s *Server) RatingCategoryVote(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("category vote: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/rating/%d", ratingId))
		return
	}

	category := strings.TrimSpace(c.PostForm("category"))
	validCategory := false
	for _, known := range model.RatingCategories {
		if category == known {
			validCategory = true
			break
		}
	}
	if !validCategory {
		flash(c, "Invalid category.", "error")
		redirectBack(c, fmt.Sprintf("/rating/%d", ratingId))
		return
	}

	direction := 0
	switch strings.ToLower(strings.TrimSpace(c.PostForm("direction"))) {
	case "up":
		direction = 1
	case "down":
		direction = -1
	default:
		flash(c, "Invalid vote.", "error")
		redirectBack(c, fmt.Sprintf("/rating/%d", ratingId))
		return
	}

	newVote, err := s.svc.ApplyCategoryVote(ratingId, user.Id, category, direction)
	if err != nil {
		Log.Error("category vote: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	action := "rating_category_unvote"
	if newVote == 1 {
		action = "rating_category_upvote"
	} else if newVote == -1 {
		action = "rating_category_downvote"
	}
	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      action,
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    ratingId,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         fmt.Sprintf("/rating/%d", ratingId),
		Metadata:    map[string]interface{}{"detail": category},
	})

	redirectBack(c, fmt.Sprintf("/rating/%d", ratingId))
}

// RatingLike toggles the viewer's like and logs rating_like or rating_unlike.
func (s *Server) RatingLike(c *gin.Context) {
	user := s.currentUser(c)
	ratingId := paramUint(c, "key")
	rating, err := s.svc.RatingById(ratingId)
	if err != nil {
		Log.Error("rating like: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if rating == nil || user == nil {
		c.Redirect(http.StatusFound, "/browse")
		return
	}

	liked, err := s.svc.ToggleRatingLike(ratingId, user.Id)
	if err != nil {
		Log.Error("rating like: ", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	action := "rating_unlike"
	if liked {
		action = "rating_like"
	}
	s.svc.RecordActivityOrLog(service.ActivityInput{
		ActorId:     user.Id,
		ActorName:   user.Username,
		Action:      action,
		Category:    categoryFromRatingType(rating.Type),
		EntityType:  "rating",
		EntityId:    ratingId,
		EntityLabel: entityLabel(rating.Type, rating.Name),
		Url:         fmt.Sprintf("/rating/%d", ratingId),
	})

	redirectBack(c, fmt.Sprintf("/rating/%d", ratingId))
}

// sanitizeFilename keeps letters, digits, dash and underscore, mapping
// everything else to underscore.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
