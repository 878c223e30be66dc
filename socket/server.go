package socket

import (
	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

// NewSocketServer initializes the Socket.IO server used to push match
// events into open swipe sessions. Clients join a room named after their
// profile id; the engine broadcasts matchCreated into both rooms.
func NewSocketServer(log *zap.Logger) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Debug("socket connected", zap.String("id", c.ID()))
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, profileID string) {
		if profileID == "" {
			log.Warn("join without profileId", zap.String("id", c.ID()))
			return
		}
		c.Join(profileID)
		log.Debug("socket joined room", zap.String("id", c.ID()), zap.String("profileId", profileID))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Debug("socket disconnected", zap.String("id", c.ID()), zap.String("reason", reason))
	})

	return server
}
