package monitor

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Feed subscribes to the upstream order-event WebSocket and nudges the
// monitor of any order an event mentions. It is purely an optimization:
// the poll loop is the source of truth, so a dropped connection or missed
// event only costs latency, never correctness.
type Feed struct {
	url    string
	logger *zap.Logger

	mu          sync.Mutex
	conn        *websocket.Conn
	subscribers map[string]*Monitor
}

// NewFeed creates an order-event feed.
func NewFeed(url string, logger *zap.Logger) *Feed {
	return &Feed{
		url:         url,
		logger:      logger,
		subscribers: make(map[string]*Monitor),
	}
}

type orderEvent struct {
	Event     string `json:"event"`
	OrderHash string `json:"orderHash"`
}

type subscribeMessage struct {
	Event     string `json:"event"`
	OrderHash string `json:"orderHash"`
}

// Subscribe registers interest in events for an order.
func (f *Feed) Subscribe(orderHash string, mon *Monitor) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subscribers[orderHash] = mon
	f.sendSubscribeLocked(orderHash)
}

// Unsubscribe drops interest in an order.
func (f *Feed) Unsubscribe(orderHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, orderHash)
}

// Run connects and dispatches events until ctx is cancelled, reconnecting
// with a capped backoff.
func (f *Feed) Run(ctx context.Context) {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		err := f.connectAndRead(ctx)
		if ctx.Err() != nil {
			f.logger.Info("event-feed-stopped")
			return
		}
		if err != nil {
			f.logger.Warn("event-feed-disconnected",
				zap.Error(err),
				zap.Duration("reconnect-in", backoff))
		}

		select {
		case <-ctx.Done():
			f.logger.Info("event-feed-stopped")
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (f *Feed) connectAndRead(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.conn = conn
	// Re-subscribe everything registered before (or during) a reconnect.
	for orderHash := range f.subscribers {
		f.sendSubscribeLocked(orderHash)
	}
	f.mu.Unlock()

	f.logger.Info("event-feed-connected", zap.String("url", f.url))

	// Close the connection when ctx ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	defer func() {
		f.mu.Lock()
		f.conn = nil
		f.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var event orderEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			f.logger.Debug("event-feed-unparseable-message", zap.Error(err))
			continue
		}
		if event.OrderHash == "" {
			continue
		}

		f.mu.Lock()
		mon := f.subscribers[event.OrderHash]
		f.mu.Unlock()

		if mon != nil {
			mon.Nudge()
		}
	}
}

func (f *Feed) sendSubscribeLocked(orderHash string) {
	if f.conn == nil {
		return
	}

	msg := subscribeMessage{
		Event:     "subscribe",
		OrderHash: orderHash,
	}
	err := f.conn.WriteJSON(msg)
	if err != nil {
		f.logger.Warn("event-feed-subscribe-failed",
			zap.String("order-hash", orderHash),
			zap.Error(err))
	}
}
