package ws

import (
	"errors"
	"net/http"
	"strings"
	"time"

	domrepo "SimMarket/internal/domain/repository"
	"SimMarket/internal/market"
	"SimMarket/internal/usecase"
	xlogger "SimMarket/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeTimeout = 5 * time.Second

// StreamConfig tunes the push loop.
type StreamConfig struct {
	// Interval between snapshot pushes.
	Interval time.Duration
	// RecheckGate re-evaluates trading hours on every push instead of
	// only once at subscribe time.
	RecheckGate bool
}

// StreamHandler pushes stock snapshots to WebSocket subscribers.
type StreamHandler struct {
	logger   *xlogger.Logger
	snaps    *usecase.SnapshotUseCase
	cal      *market.Calendar
	cfg      StreamConfig
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, snaps *usecase.SnapshotUseCase, cal *market.Calendar, cfg StreamConfig) *StreamHandler {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &StreamHandler{
		logger: logger,
		snaps:  snaps,
		cal:    cal,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/stocks/:symbol", h.Stream)
}

type streamEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Stream upgrades the connection and pushes one snapshot per interval
// until the client disconnects or the market closes.
func (h *StreamHandler) Stream(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))
	ctx := c.Request().Context()

	if _, err := h.snaps.GetSnapshot(ctx, symbol); err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "stock not found")
		}
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Gate is checked once at subscribe time. Sessions already open keep
	// streaming across the close unless RecheckGate is set.
	if !h.cal.IsTradingAt(time.Now()) {
		h.writeEvent(conn, streamEvent{Type: "market_closed"})
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.Interval)
	defer ticker.Stop()

	h.logger.Info("ws subscribe", xlogger.String("symbol", symbol))

	if err := h.pushSnapshot(c, conn, symbol); err != nil {
		return nil
	}

	for {
		select {
		case <-done:
			h.logger.Info("ws disconnect", xlogger.String("symbol", symbol))
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if h.cfg.RecheckGate && !h.cal.IsTradingAt(time.Now()) {
				h.writeEvent(conn, streamEvent{Type: "market_closed"})
				return nil
			}
			if err := h.pushSnapshot(c, conn, symbol); err != nil {
				return nil
			}
		}
	}
}

func (h *StreamHandler) pushSnapshot(c echo.Context, conn *websocket.Conn, symbol string) error {
	snap, err := h.snaps.GetSnapshot(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			h.writeEvent(conn, streamEvent{Type: "gone"})
			return err
		}
		h.logger.Error("ws snapshot", xlogger.String("symbol", symbol), xlogger.Error(err))
		return nil
	}
	return h.writeEvent(conn, streamEvent{Type: "tick", Data: snap})
}

func (h *StreamHandler) writeEvent(conn *websocket.Conn, ev streamEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ev)
}
