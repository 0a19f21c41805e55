package api

import (
	"errors"
	"strings"

	domrepo "SimMarket/internal/domain/repository"
	"SimMarket/internal/usecase"
	xhttp "SimMarket/pkg/http"
	xlogger "SimMarket/pkg/logger"
	"SimMarket/pkg/util"

	"github.com/labstack/echo/v4"
)

// StocksEchoHandler serves the snapshot read API and stock registration.
type StocksEchoHandler struct {
	logger *xlogger.Logger
	snaps  *usecase.SnapshotUseCase
}

func NewStocksEchoHandler(logger *xlogger.Logger, snaps *usecase.SnapshotUseCase) *StocksEchoHandler {
	return &StocksEchoHandler{logger: logger, snaps: snaps}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/stocks")
	g.POST("", h.Register)
	g.GET("", h.List)
	g.GET("/:symbol", h.Get)
	g.GET("/:symbol/candles", h.Candles)
}

// RegisterStockRequest carries a new stock registration.
type RegisterStockRequest struct {
	Symbol             string  `json:"symbol" validate:"required,min=1,max=12"`
	CompanyName        string  `json:"companyName" validate:"required"`
	IconURL            string  `json:"iconUrl" validate:"required"`
	CurrentPrice       float64 `json:"currentPrice" validate:"required,gt=0"`
	LastDayTradedPrice float64 `json:"lastDayTradedPrice" validate:"required,gt=0"`
}

func (h *StocksEchoHandler) Register(c echo.Context) error {
	req := &RegisterStockRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.snaps.RegisterStock(c.Request().Context(), usecase.RegisterParams{
		Symbol:             strings.ToUpper(req.Symbol),
		CompanyName:        req.CompanyName,
		IconURL:            req.IconURL,
		CurrentPrice:       req.CurrentPrice,
		LastDayTradedPrice: req.LastDayTradedPrice,
	})
	if err != nil {
		if errors.Is(err, domrepo.ErrConflict) {
			return xhttp.AppErrorResponse(c, xhttp.ConflictError("symbol already registered"))
		}
		h.logger.Error("register stock", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, snap)
}

func (h *StocksEchoHandler) List(c echo.Context) error {
	snaps, err := h.snaps.ListSnapshots(c.Request().Context())
	if err != nil {
		h.logger.Error("list stocks", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, snaps)
}

func (h *StocksEchoHandler) Get(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))

	snap, err := h.snaps.GetSnapshot(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.NotFoundResponse(c, "stock not found")
		}
		h.logger.Error("get stock", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *StocksEchoHandler) Candles(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))
	limit := util.ParseIntDefault(c.QueryParam("limit"), 0)

	res, err := h.snaps.GetCandles(c.Request().Context(), usecase.GetCandlesParams{
		Symbol:    symbol,
		Timeframe: tf,
		Limit:     limit,
	})
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.NotFoundResponse(c, "stock not found")
		}
		h.logger.Error("get candles", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
