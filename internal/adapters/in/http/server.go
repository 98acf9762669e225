// Package http exposes the transactional core over a REST API.
// Caller identity arrives in the X-Buyer-ID and X-Kitchen-ID headers; an
// upstream gateway is expected to have authenticated them.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/application/usecases/queries"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerBuyerID   = "X-Buyer-ID"
	headerKitchenID = "X-Kitchen-ID"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	cancelOrderHandler  commands.CancelOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderCommandHandler
	approveHandler      commands.ApproveSubscriptionRequestCommandHandler
	rejectHandler       commands.RejectSubscriptionRequestCommandHandler
	quoteHandler        queries.QuoteDeliveryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	cancelOrderHandler commands.CancelOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	approveHandler commands.ApproveSubscriptionRequestCommandHandler,
	rejectHandler commands.RejectSubscriptionRequestCommandHandler,
	quoteHandler queries.QuoteDeliveryQueryHandler,
) *Server {
	return &Server{
		cancelOrderHandler:  cancelOrderHandler,
		advanceOrderHandler: advanceOrderHandler,
		approveHandler:      approveHandler,
		rejectHandler:       rejectHandler,
		quoteHandler:        quoteHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/advance", s.AdvanceOrder)
	v1.POST("/subscription-requests/:id/approve", s.ApproveSubscriptionRequest)
	v1.POST("/subscription-requests/:id/reject", s.RejectSubscriptionRequest)
	v1.GET("/delivery/quote", s.QuoteDelivery)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - a buyer cancels their order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	buyerID, err := headerUUID(ctx, headerBuyerID)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+headerBuyerID+" header")
	}

	var body CancelOrderRequest
	if err = bindStrict(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, buyerID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - a kitchen moves an
// order forward along the fulfillment path.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	kitchenID, err := headerUUID(ctx, headerKitchenID)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+headerKitchenID+" header")
	}

	var body AdvanceOrderRequest
	if err = bindStrict(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	targetStatus, err := order.StatusFromString(body.TargetStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, kitchenID, targetStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// ApproveSubscriptionRequest handles POST /api/v1/subscription-requests/:id/approve.
func (s *Server) ApproveSubscriptionRequest(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid subscription request id")
	}

	kitchenID, err := headerUUID(ctx, headerKitchenID)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+headerKitchenID+" header")
	}

	cmd, err := commands.NewApproveSubscriptionRequestCommand(requestID, kitchenID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.approveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, requestToResponse(updated))
}

// RejectSubscriptionRequest handles POST /api/v1/subscription-requests/:id/reject.
func (s *Server) RejectSubscriptionRequest(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid subscription request id")
	}

	kitchenID, err := headerUUID(ctx, headerKitchenID)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+headerKitchenID+" header")
	}

	var body RejectSubscriptionRequest
	if err = bindStrict(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectSubscriptionRequestCommand(requestID, kitchenID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.rejectHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, requestToResponse(updated))
}

// QuoteDelivery handles GET /api/v1/delivery/quote - prices a delivery
// between a kitchen and a buyer.
func (s *Server) QuoteDelivery(ctx echo.Context) error {
	kitchenID, err := kernel.UUIDFromString(ctx.QueryParam("kitchen_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen_id")
	}

	buyerID, err := kernel.UUIDFromString(ctx.QueryParam("buyer_id"))
	if err != nil {
		return badRequest(ctx, "Invalid buyer_id")
	}

	query, err := queries.NewQuoteDeliveryQuery(kitchenID, buyerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	quote, err := s.quoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteToResponse(quote))
}

// bindStrict decodes a JSON body rejecting unknown fields. An empty body
// is allowed and leaves the target at its zero value.
func bindStrict(ctx echo.Context, target any) error {
	decoder := json.NewDecoder(ctx.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	return nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func headerUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain and application errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	var processed *subscription.AlreadyProcessedError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &processed):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
