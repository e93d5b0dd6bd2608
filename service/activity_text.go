package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DarrenRF/rt/model"
)

// activityFormatter renders one action kind into a feed sentence.
type activityFormatter func(actor, label, detail string) string

// labeled renders "@actor <verb> <noun>: <label>" and drops the label part
// when the event carries none.
func labeled(verb, noun string) activityFormatter {
	return func(actor, label, _ string) string {
		if label != "" {
			return fmt.Sprintf("@%s %s %s: %s", actor, verb, noun, label)
		}
		return fmt.Sprintf("@%s %s %s", actor, verb, noun)
	}
}

// detailed renders vote sentences, substituting "a category" when the vote
// detail is missing from the event metadata.
func detailed(format, formatNoLabel string) activityFormatter {
	return func(actor, label, detail string) string {
		if detail == "" {
			detail = "a category"
		}
		if label != "" {
			return fmt.Sprintf(format, actor, detail, label)
		}
		return fmt.Sprintf(formatNoLabel, actor, detail)
	}
}

var activityFormatters = map[string]activityFormatter{
	"follow": func(actor, label, _ string) string {
		if label == "" {
			label = "a user"
		}
		return fmt.Sprintf("@%s followed %s", actor, label)
	},
	"unfollow": func(actor, label, _ string) string {
		if label == "" {
			label = "a user"
		}
		return fmt.Sprintf("@%s unfollowed %s", actor, label)
	},
	"rating_create": labeled("created", "a rating"),
	"rating_edit":   labeled("edited", "a rating"),
	"rating_delete": labeled("deleted", "a rating"),
	"rating_view":   labeled("viewed", "a rating"),
	"rating_like":   labeled("liked", "a rating"),
	"rating_unlike": labeled("unliked", "a rating"),
	"rating_category_upvote": detailed(
		"@%s upvoted %s on a rating: %s",
		"@%s upvoted %s on a rating"),
	"rating_category_downvote": detailed(
		"@%s downvoted %s on a rating: %s",
		"@%s downvoted %s on a rating"),
	"rating_category_unvote": detailed(
		"@%s removed their vote on %s for a rating: %s",
		"@%s removed their vote on %s for a rating"),
	"rating_comment_add":    labeled("commented on", "a rating"),
	"rating_comment_edit":   labeled("edited", "a rating comment"),
	"rating_comment_delete": labeled("deleted", "a rating comment"),
	"playlist_favorite":     labeled("favorited", "a playlist"),
	"playlist_unfavorite":   labeled("unfavorited", "a playlist"),
	"bulletin_post": func(actor, _, _ string) string {
		return fmt.Sprintf("@%s posted to the bulletin", actor)
	},
	"profile_comment_add": func(actor, label, _ string) string {
		if label == "" {
			label = "a profile"
		}
		return fmt.Sprintf("@%s commented on %s", actor, label)
	},
	"profile_comment_edit": func(actor, label, _ string) string {
		if label == "" {
			label = "a profile"
		}
		return fmt.Sprintf("@%s edited a comment on %s", actor, label)
	},
	"profile_comment_delete": func(actor, label, _ string) string {
		if label == "" {
			label = "a profile"
		}
		return fmt.Sprintf("@%s deleted a comment on %s", actor, label)
	},
	"profile_update": func(actor, _, _ string) string {
		return fmt.Sprintf("@%s updated their profile", actor)
	},
}

// ActivityText renders one activity row into its feed sentence. Unknown
// actions fall back to "@actor: action label" rather than erroring, so a new
// action kind degrades gracefully instead of breaking the feed page.
func ActivityText(a *model.Activity) string {
	detail := ""
	if len(a.Metadata) > 0 {
		var meta map[string]interface{}
		if err := json.Unmarshal(a.Metadata, &meta); err == nil {
			if d, ok := meta["detail"].(string); ok {
				detail = strings.TrimSpace(d)
			}
		}
	}

	if format, ok := activityFormatters[a.Action]; ok {
		return format(a.ActorUsername, a.EntityLabel, detail)
	}
	return strings.TrimSpace(fmt.Sprintf("@%s: %s %s", a.ActorUsername, a.Action, a.EntityLabel))
}
