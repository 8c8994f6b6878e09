// Package http exposes the order lifecycle over a REST surface and hosts the
// websocket relay upgrade. Handlers are thin: they bind input, derive caller
// identity from the session, and delegate to command and query handlers.
package http

import (
	"net/http"
	"strconv"
	"time"

	"foodcourt/internal/core/application/events"
	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/auth"
	"foodcourt/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Relay upgrades an HTTP request to a websocket viewer connection.
type Relay interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	advanceOrderHandler         commands.AdvanceOrderCommandHandler
	assignDriverHandler         commands.AssignDriverCommandHandler
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler
	archiveOrderHandler         commands.ArchiveOrderCommandHandler
	rateOrderHandler            commands.RateOrderCommandHandler

	// Query handlers
	getActiveOrdersHandler   queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler   queries.GetOrderHistoryQueryHandler
	getReviewsHandler        queries.GetReviewsQueryHandler
	getDriverOrdersHandler   queries.GetDriverOrdersQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getFeeQuoteHandler       queries.GetFeeQuoteQueryHandler

	restaurantRepo ports.RestaurantRepository
	relay          Relay
}

// ServerParams bundles the dependencies of NewServer.
type ServerParams struct {
	CreateOrderHandler          commands.CreateOrderCommandHandler
	AdvanceOrderHandler         commands.AdvanceOrderCommandHandler
	AssignDriverHandler         commands.AssignDriverCommandHandler
	UpdateDriverLocationHandler commands.UpdateDriverLocationCommandHandler
	ArchiveOrderHandler         commands.ArchiveOrderCommandHandler
	RateOrderHandler            commands.RateOrderCommandHandler

	GetActiveOrdersHandler   queries.GetActiveOrdersQueryHandler
	GetOrderHistoryHandler   queries.GetOrderHistoryQueryHandler
	GetReviewsHandler        queries.GetReviewsQueryHandler
	GetDriverOrdersHandler   queries.GetDriverOrdersQueryHandler
	GetCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	GetFeeQuoteHandler       queries.GetFeeQuoteQueryHandler

	RestaurantRepo ports.RestaurantRepository
	Relay          Relay
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:          params.CreateOrderHandler,
		advanceOrderHandler:         params.AdvanceOrderHandler,
		assignDriverHandler:         params.AssignDriverHandler,
		updateDriverLocationHandler: params.UpdateDriverLocationHandler,
		archiveOrderHandler:         params.ArchiveOrderHandler,
		rateOrderHandler:            params.RateOrderHandler,
		getActiveOrdersHandler:      params.GetActiveOrdersHandler,
		getOrderHistoryHandler:      params.GetOrderHistoryHandler,
		getReviewsHandler:           params.GetReviewsHandler,
		getDriverOrdersHandler:      params.GetDriverOrdersHandler,
		getCustomerOrdersHandler:    params.GetCustomerOrdersHandler,
		getFeeQuoteHandler:          params.GetFeeQuoteHandler,
		restaurantRepo:              params.RestaurantRepo,
		relay:                       params.Relay,
	}
}

// RegisterRoutes mounts the API surface on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, tokens *auth.TokenManager) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", SessionMiddleware(tokens))

	api.POST("/orders", s.CreateOrder, RequireRole(auth.RoleCustomer))
	api.POST("/orders/quote", s.QuoteFee, RequireRole(auth.RoleCustomer))
	api.GET("/orders/my", s.GetCustomerOrders, RequireRole(auth.RoleCustomer))
	api.PATCH("/orders/my/:id/rate", s.RateOrder, RequireRole(auth.RoleCustomer))

	api.GET("/orders/me", s.GetActiveOrders, RequireRole(auth.RoleRestaurant))
	api.GET("/orders/me/history", s.GetOrderHistory, RequireRole(auth.RoleRestaurant))
	api.GET("/orders/me/reviews", s.GetReviews, RequireRole(auth.RoleRestaurant))
	api.PATCH("/orders/me/:id/next", s.AdvanceOrder, RequireRole(auth.RoleRestaurant))
	api.PATCH("/orders/me/:id/driver", s.AssignDriver, RequireRole(auth.RoleRestaurant))
	api.PATCH("/orders/me/:id/archive", s.ArchiveOrder, RequireRole(auth.RoleRestaurant))

	api.GET("/orders/driver", s.GetDriverOrders, RequireRole(auth.RoleDriver))
	api.PATCH("/orders/driver/:id/loc", s.UpdateDriverLocation, RequireRole(auth.RoleDriver))

	api.GET("/ws", s.RelayWS)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RelayWS handles GET /api/v1/ws - upgrades the connection for the relay.
func (s *Server) RelayWS(ctx echo.Context) error {
	return s.relay.ServeWS(ctx.Response(), ctx.Request())
}

type lineItemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type destinationRequest struct {
	Lng   float64 `json:"lng"`
	Lat   float64 `json:"lat"`
	Label string  `json:"label"`
}

type createOrderRequest struct {
	RestaurantID  string              `json:"restaurantId"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	LineItems     []lineItemRequest   `json:"lineItems"`
	Total         float64             `json:"total"`
	Destination   *destinationRequest `json:"destination"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("restaurantId", err))
	}

	lineItems := make([]commands.LineItemInput, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, commands.LineItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var destination *commands.DestinationInput
	if req.Destination != nil {
		destination = &commands.DestinationInput{
			Lng:   req.Destination.Lng,
			Lat:   req.Destination.Lat,
			Label: req.Destination.Label,
		}
	}

	customerName := req.CustomerName
	if customerName == "" {
		customerName = principal.Name
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), restaurantID, principal.ID,
		customerName, req.CustomerEmail, lineItems, req.Total, destination)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, events.OrderPayloadFromDomain(created))
}

type quoteRequest struct {
	RestaurantID string `json:"restaurantId"`
	Address      string `json:"address"`
}

// QuoteFee handles POST /api/v1/orders/quote - estimates the delivery fee.
func (s *Server) QuoteFee(ctx echo.Context) error {
	var req quoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("restaurantId", err))
	}

	query, err := queries.NewGetFeeQuoteQuery(restaurantID, req.Address)
	if err != nil {
		return writeError(ctx, err)
	}

	quote, err := s.getFeeQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

// GetActiveOrders handles GET /api/v1/orders/me - the restaurant's open orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(restaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderHistory handles GET /api/v1/orders/me/history - closed orders with filters.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	filter := ports.HistoryFilter{Query: ctx.QueryParam("q")}

	if filter.MinTotal, err = parseFloatParam(ctx, "minTotal"); err != nil {
		return writeError(ctx, err)
	}
	if filter.MaxTotal, err = parseFloatParam(ctx, "maxTotal"); err != nil {
		return writeError(ctx, err)
	}
	if filter.From, err = parseTimeParam(ctx, "from"); err != nil {
		return writeError(ctx, err)
	}
	if filter.To, err = parseTimeParam(ctx, "to"); err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(restaurantID, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetReviews handles GET /api/v1/orders/me/reviews - the restaurant's rated orders.
func (s *Server) GetReviews(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetReviewsQuery(restaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getReviewsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// AdvanceOrder handles PATCH /api/v1/orders/me/:id/next - moves an order to
// its next lifecycle status.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, restaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events.OrderPayloadFromDomain(updated))
}

type assignDriverRequest struct {
	DriverName   *string `json:"driverName"`
	DriverUserID *string `json:"driverUserId"`
}

// AssignDriver handles PATCH /api/v1/orders/me/:id/driver - attaches a driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req assignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var driverUserID *kernel.UUID
	if req.DriverUserID != nil {
		id, err := kernel.UUIDFromString(*req.DriverUserID)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driverUserId", err))
		}
		driverUserID = &id
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, restaurantID, req.DriverName, driverUserID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events.OrderPayloadFromDomain(updated))
}

// ArchiveOrder handles PATCH /api/v1/orders/me/:id/archive - hides a closed order.
func (s *Server) ArchiveOrder(ctx echo.Context) error {
	restaurantID, err := s.restaurantID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewArchiveOrderCommand(orderID, restaurantID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.archiveOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events.OrderPayloadFromDomain(updated))
}

// GetDriverOrders handles GET /api/v1/orders/driver - the driver's deliverable orders.
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	query, err := queries.NewGetDriverOrdersQuery(principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getDriverOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

type driverLocationRequest struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// UpdateDriverLocation handles PATCH /api/v1/orders/driver/:id/loc - records
// a position observation for an assigned order.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req driverLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Lng, req.Lat)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(orderID, principal.ID, point)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateDriverLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events.OrderPayloadFromDomain(updated))
}

// GetCustomerOrders handles GET /api/v1/orders/my - the customer's own orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	query, err := queries.NewGetCustomerOrdersQuery(principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

type rateOrderRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// RateOrder handles PATCH /api/v1/orders/my/:id/rate - rates a closed order.
func (s *Server) RateOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req rateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, principal.ID, req.Score, req.Comment)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.rateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events.OrderPayloadFromDomain(updated))
}

// restaurantID resolves the restaurant owned by the authenticated caller.
// Identity always comes from the session, never from the request.
func (s *Server) restaurantID(ctx echo.Context) (kernel.UUID, error) {
	principal, _ := principalFrom(ctx)

	owned, err := s.restaurantRepo.GetByOwner(ctx.Request().Context(), principal.ID)
	if err != nil {
		return kernel.UUID{}, err
	}
	return owned.ID(), nil
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}

func parseFloatParam(ctx echo.Context, name string) (*float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &value, nil
}

func parseTimeParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &value, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
