package models

// Reaction types supported on posts.
const (
	ReactionYouGotThis = "youGotThis"
	ReactionNotAlone   = "notAlone"
	ReactionWithYou    = "withYou"
	ReactionStrong     = "strong"
	ReactionSupport    = "support"
)

// Post holds the structure for the posts collection in mongo. Reactions and
// UserReactions are parallel maps: for every reaction type the count must equal
// the number of user ids in the corresponding set, and a user id may appear in
// at most one set at a time.
type Post struct {
	PostID         string              `json:"postId" bson:"_id"`
	Content        string              `json:"content" bson:"content"`
	Categories     []string            `json:"categories" bson:"categories"`
	ImageURL       string              `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	UserID         string              `json:"userId" bson:"userId"`
	AuthorName     string              `json:"authorName" bson:"authorName"`
	Timestamp      int64               `json:"timestamp" bson:"timestamp"`
	Reactions      map[string]int      `json:"reactions" bson:"reactions"`
	UserReactions  map[string][]string `json:"userReactions" bson:"userReactions"`
	CommentCount   int                 `json:"commentCount" bson:"commentCount"`
	ContentVisible bool                `json:"contentVisible" bson:"contentVisible"`
}

// ReactionBy returns the reaction type the given user currently holds on the
// post, or "" if they have none.
func (p *Post) ReactionBy(userID string) string {
	for reactionType, users := range p.UserReactions {
		for _, id := range users {
			if id == userID {
				return reactionType
			}
		}
	}
	return ""
}
