package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/rayseal/supportapp-api/databases"
	"github.com/rayseal/supportapp-api/models"
	"github.com/rayseal/supportapp-api/moderation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// reportHub tracks connected admin sockets (userId -> *websocket.Conn)
type reportHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
	watch   sync.Once
}

var hub = &reportHub{
	clients: make(map[string]*websocket.Conn),
}

// ReportWatch pushes newly filed pending reports to connected admins over a
// websocket, fed by a change stream on the reports collection.
type ReportWatch struct {
	RDB  databases.ReportDatabase
	Gate *moderation.AccessGate
}

// ServeWS upgrades the connection and registers the admin. Non-admins are
// disconnected immediately; the gate fails closed so a lookup error reads as
// not-an-admin.
func (rw ReportWatch) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" || !rw.Gate.IsAdmin(r.Context(), userID) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "admin required"}`))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Error("websocket upgrade failed")
		return
	}

	hub.mutex.Lock()
	hub.clients[userID] = conn
	hub.mutex.Unlock()
	zap.S().Infow("admin connected to report stream", "userId", userID)

	hub.watch.Do(func() { go rw.watchReports() })

	conn.SetCloseHandler(func(code int, text string) error {
		hub.mutex.Lock()
		delete(hub.clients, userID)
		hub.mutex.Unlock()
		zap.S().Infow("admin disconnected from report stream", "userId", userID)
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			hub.mutex.Lock()
			delete(hub.clients, userID)
			hub.mutex.Unlock()
			break
		}
	}
}

// watchReports tails the reports collection and broadcasts every insert.
func (rw ReportWatch) watchReports() {
	ctx := context.Background()
	pipeline := []bson.M{{"$match": bson.M{"operationType": "insert"}}}
	stream, err := rw.RDB.Watch(ctx, pipeline)
	if err != nil {
		zap.S().With(err).Error("failed to open report change stream")
		return
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			FullDocument models.Report `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			zap.S().With(err).Error("failed to decode report change event")
			continue
		}
		broadcastReport(event.FullDocument)
	}
}

func broadcastReport(report models.Report) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for userID, conn := range hub.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "new_report",
			"data":  report,
		})
		if err != nil {
			zap.S().With(err).Errorw("failed to push report", "userId", userID)
			delete(hub.clients, userID)
			conn.Close()
		}
	}
}
