package adapter

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

const (
	streamMinBackoff = time.Second
	streamMaxBackoff = 30 * time.Second
)

// StreamListener follows the server's websocket change stream and hands
// every event to onEvent. It reconnects with exponential backoff until
// stopped.
type StreamListener struct {
	url     string
	token   func() string
	onEvent func(models.StoryEvent)
	logger  *logger.Logger

	minBackoff time.Duration
	maxBackoff time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStreamListener creates an idle listener. token is read at every dial so
// a token obtained after construction is used.
func NewStreamListener(url string, token func() string, onEvent func(models.StoryEvent), logger *logger.Logger) *StreamListener {
	return &StreamListener{
		url:        url,
		token:      token,
		onEvent:    onEvent,
		logger:     logger,
		minBackoff: streamMinBackoff,
		maxBackoff: streamMaxBackoff,
	}
}

// Start launches the listening goroutine. A running listener is restarted.
func (s *StreamListener) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	streamCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.run(streamCtx)
	}()
}

// Stop closes the connection and waits for the goroutine to exit. Safe to
// call when not running.
func (s *StreamListener) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *StreamListener) run(ctx context.Context) {
	backoff := s.minBackoff

	for {
		connected, err := s.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = s.minBackoff
		}

		s.logger.Warn().Err(err).
			Str("func", "StreamListener.run").
			Dur("retry_in", backoff).
			Msg("change stream disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, s.maxBackoff)
	}
}

// listen holds one connection until it fails. connected reports whether the
// dial succeeded.
func (s *StreamListener) listen(ctx context.Context) (connected bool, err error) {
	header := http.Header{}
	if token := s.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.Dial(ctx, s.url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return false, err
	}
	defer conn.CloseNow()

	s.logger.Info().Str("func", "StreamListener.listen").Str("url", s.url).Msg("change stream connected")

	for {
		var event models.StoryEvent
		if err = wsjson.Read(ctx, conn, &event); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				err = errors.New("server closed the stream")
			}
			return true, err
		}
		s.onEvent(event)
	}
}
