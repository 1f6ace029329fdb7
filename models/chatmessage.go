package models

// AdminRoomID is the chat room moderation audit messages are appended to.
const AdminRoomID = "Admin"

// ChatMessage holds the structure for the chat_messages collection in mongo
type ChatMessage struct {
	MessageID      string `json:"messageId" bson:"_id"`
	RoomID         string `json:"roomId" bson:"roomId"`
	SenderID       string `json:"senderId" bson:"senderId"`
	SenderName     string `json:"senderName" bson:"senderName"`
	Content        string `json:"content" bson:"content"`
	Timestamp      int64  `json:"timestamp" bson:"timestamp"`
	ContentVisible bool   `json:"contentVisible" bson:"contentVisible"`
}
