package models

// Comment holds the structure for the comments collection in mongo
type Comment struct {
	CommentID      string `json:"commentId" bson:"_id"`
	PostID         string `json:"postId" bson:"postId"`
	UserID         string `json:"userId" bson:"userId"`
	AuthorName     string `json:"authorName" bson:"authorName"`
	Content        string `json:"content" bson:"content"`
	Timestamp      int64  `json:"timestamp" bson:"timestamp"`
	ContentVisible bool   `json:"contentVisible" bson:"contentVisible"`
}
