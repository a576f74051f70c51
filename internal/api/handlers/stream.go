package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/logger"
)

const (
	// quoteRefreshInterval paces upstream quote polls per connection.
	quoteRefreshInterval = 5 * time.Second

	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// StreamHandler pushes periodic quote refreshes over a websocket.
type StreamHandler struct {
	quotes   contracts.QuoteProvider
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new quote stream handler.
func NewStreamHandler(quotes contracts.QuoteProvider, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		quotes: quotes,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is served same-origin in production and from a dev
			// server locally, so origin checks stay open.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

type streamMessage struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Timestamp     string  `json:"timestamp"`
	Error         string  `json:"error,omitempty"`
}

// StreamQuotes upgrades the connection and pushes a quote snapshot
// every refresh interval until the client disconnects.
// GET /api/stream/{ticker}
func (h *StreamHandler) StreamQuotes(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["ticker"]))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("ticker", ticker).Debug("Quote stream opened")

	// Reader goroutine only services control frames and detects close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	refresh := time.NewTicker(quoteRefreshInterval)
	defer refresh.Stop()

	// First snapshot immediately, then on the ticker.
	for {
		if err := h.pushQuote(r, conn, ticker); err != nil {
			h.logger.WithError(err).WithField("ticker", ticker).Debug("Quote stream closed")
			return
		}

		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-refresh.C:
		}
	}
}

func (h *StreamHandler) pushQuote(r *http.Request, conn *websocket.Conn, ticker string) error {
	msg := streamMessage{
		Ticker:    ticker,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	quote, err := h.quotes.Quote(r.Context(), ticker)
	if err != nil {
		msg.Error = "quote refresh failed"
	} else {
		msg.Price = quote.Price
		msg.ChangePercent = quote.ChangePercent
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
