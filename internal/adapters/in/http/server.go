package http

import (
	"context"
	"net/http"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/core/domain/services"
	"freightops/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type (
	CreateShipmentHandler interface {
		Handle(ctx context.Context, command commands.CreateShipmentCommand) (*shipment.Shipment, error)
	}
	UpdateShipmentHandler interface {
		Handle(ctx context.Context, command commands.UpdateShipmentCommand) (*shipment.Shipment, error)
	}
	AssignDispatchHandler interface {
		Handle(ctx context.Context, command commands.AssignDispatchCommand) (services.Assignment, error)
	}
	TransitionStatusHandler interface {
		Handle(ctx context.Context, command commands.TransitionStatusCommand) (commands.TransitionResult, error)
	}

	PendingShipmentsHandler interface {
		Handle(ctx context.Context, query queries.GetPendingShipmentsQuery) ([]queries.GetPendingShipmentsQueryResponse, error)
	}
	ShipmentDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentDetailsQuery) (queries.GetShipmentDetailsQueryResponse, error)
	}
	ListShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListShipmentsQuery) ([]queries.ListShipmentsQueryResponse, error)
	}
	AvailableVehiclesHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableVehiclesQuery) ([]queries.GetAvailableVehiclesQueryResponse, error)
	}
	AvailableDriversHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableDriversQuery) ([]queries.GetAvailableDriversQueryResponse, error)
	}
)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateShipment   CreateShipmentHandler
	UpdateShipment   UpdateShipmentHandler
	AssignDispatch   AssignDispatchHandler
	TransitionStatus TransitionStatusHandler

	PendingShipments  PendingShipmentsHandler
	ShipmentDetails   ShipmentDetailsHandler
	ListShipments     ListShipmentsHandler
	AvailableVehicles AvailableVehiclesHandler
	AvailableDrivers  AvailableDriversHandler
}

// Server translates HTTP requests into commands and queries and their
// results into JSON.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Options configures the echo instance built by NewEcho.
type Options struct {
	JWTSecret []byte
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	OpenAPI   *openapi3.T
}

// NewEcho wires middleware and routes. /health, /metrics and /swagger are
// public; everything under /api/v1 needs a bearer token.
func NewEcho(server *Server, opts Options) (*echo.Echo, error) {
	validator, err := NewBodyValidator()
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(opts.OpenAPI); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator
	e.HTTPErrorHandler = NewErrorHandler(opts.Logger, opts.Metrics)

	e.Use(RequestID())
	e.Use(RequestLogger(opts.Logger))
	e.Use(Metrics(opts.Metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", Authenticate(opts.JWTSecret), RequestValidator(opts.OpenAPI))
	server.RegisterRoutes(api)

	return e, nil
}

func (s *Server) RegisterRoutes(g *echo.Group) {
	g.GET("/shipments", s.ListShipments)
	g.POST("/shipments", s.CreateShipment)
	g.GET("/shipments/pending", s.GetPendingShipments)
	g.GET("/shipments/:shipmentId", s.GetShipment)
	g.PATCH("/shipments/:shipmentId", s.UpdateShipment)
	g.POST("/shipments/:shipmentId/dispatch", s.AssignDispatch)
	g.POST("/shipments/:shipmentId/status", s.TransitionStatus)
	g.GET("/vehicles/available", s.GetAvailableVehicles)
	g.GET("/drivers/available", s.GetAvailableDrivers)
}
