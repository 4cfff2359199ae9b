package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/MKhiriev/go-story-sync/internal/logger"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamPingInterval = 30 * time.Second
)

// stream upgrades to a websocket and pushes every story event published
// after the upgrade. Messages from the client are ignored.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "Handler.stream").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	events, unsubscribe := h.services.Events.Subscribe()
	defer unsubscribe()

	ctx := conn.CloseRead(r.Context())
	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	log.Info().Msg("change stream subscriber connected")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("change stream subscriber left")
			return
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err = writeEvent(ctx, conn, event); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Err(err).Str("story_id", event.StoryID).Msg("cannot push story event")
				}
				return
			}
		case <-ping.C:
			pingCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
			err = conn.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Err(err).Msg("change stream ping failed")
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, event any) error {
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()

	return wsjson.Write(ctx, conn, event)
}
