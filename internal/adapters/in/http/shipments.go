package http

import (
	"net/http"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/application/usecases/queries"
	"freightops/internal/core/domain/model/access"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req CreateShipmentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	priority, err := shipment.ParsePriority(req.Priority)
	if err != nil {
		return err
	}
	orderID, err := kernelID(req.OrderID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	planned, err := kernel.NewTimeWindow(req.PlannedStart, req.PlannedEnd)
	if err != nil {
		return err
	}
	specs, err := stopSpecs(req.Stops)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(actor, orderID, priority, planned, specs)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toShipmentResponse(created))
}

// UpdateShipment handles PATCH /api/v1/shipments/{shipmentId}.
func (s *Server) UpdateShipment(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	shipmentID, err := shipmentIDParam(c)
	if err != nil {
		return err
	}
	var req UpdateShipmentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	var priority *shipment.Priority
	if req.Priority != nil {
		p, parseErr := shipment.ParsePriority(*req.Priority)
		if parseErr != nil {
			return parseErr
		}
		priority = &p
	}
	var planned *kernel.TimeWindow
	if req.PlannedStart != nil && req.PlannedEnd != nil {
		w, windowErr := kernel.NewTimeWindow(*req.PlannedStart, *req.PlannedEnd)
		if windowErr != nil {
			return windowErr
		}
		planned = &w
	}
	specs, err := stopSpecs(req.Stops)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentCommand(actor, shipmentID, priority, planned, specs)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// AssignDispatch handles POST /api/v1/shipments/{shipmentId}/dispatch.
func (s *Server) AssignDispatch(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	shipmentID, err := shipmentIDParam(c)
	if err != nil {
		return err
	}
	var req AssignDispatchRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	vehicleID, err := kernelID(req.VehicleID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("vehicleId", err)
	}
	driverID, err := kernelID(req.DriverID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}

	cmd, err := commands.NewAssignDispatchCommand(actor, shipmentID, vehicleID, driverID, req.Notes)
	if err != nil {
		return err
	}
	assignment, err := s.handlers.AssignDispatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAssignmentResponse(assignment))
}

// TransitionStatus handles POST /api/v1/shipments/{shipmentId}/status.
func (s *Server) TransitionStatus(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	shipmentID, err := shipmentIDParam(c)
	if err != nil {
		return err
	}
	var req TransitionStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	target, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	updates := make([]shipment.StopUpdate, 0, len(req.StopUpdates))
	for _, u := range req.StopUpdates {
		update, updateErr := u.update()
		if updateErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("stopId", updateErr)
		}
		updates = append(updates, update)
	}

	cmd, err := commands.NewTransitionStatusCommand(actor, shipmentID, target, req.Description, req.Location, updates)
	if err != nil {
		return err
	}
	result, err := s.handlers.TransitionStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TransitionResponse{
		Shipment: toShipmentResponse(result.Shipment),
		Event:    toEventResponse(result.Event),
	})
}

// GetShipment handles GET /api/v1/shipments/{shipmentId}.
func (s *Server) GetShipment(c echo.Context) error {
	shipmentID, err := shipmentIDParam(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentDetailsQuery(shipmentID)
	if err != nil {
		return err
	}

	details, err := s.handlers.ShipmentDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(details))
}

// ListShipments handles GET /api/v1/shipments?status=&limit=&offset=.
func (s *Server) ListShipments(c echo.Context) error {
	var (
		statusParam *string
		limit       *int
		offset      *int
	)
	params := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &statusParam); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", params, &offset); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("offset", err)
	}

	var status *shipment.Status
	if statusParam != nil {
		parsed, err := shipment.ParseStatus(*statusParam)
		if err != nil {
			return err
		}
		status = &parsed
	}
	query, err := queries.NewListShipmentsQuery(status, valueOr(limit, 0), valueOr(offset, 0))
	if err != nil {
		return err
	}

	rows, err := s.handlers.ListShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]ShipmentSummaryResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, ShipmentSummaryResponse{
			ID:           r.ID.Bytes(),
			Number:       r.Number,
			OrderNumber:  r.OrderNumber,
			Priority:     r.Priority.String(),
			Status:       r.Status.String(),
			PlannedStart: r.PlannedStart,
			PlannedEnd:   r.PlannedEnd,
			CreatedAt:    r.CreatedAt,
			RecentEvents: eventViewResponses(r.RecentEvents),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPendingShipments handles GET /api/v1/shipments/pending.
func (s *Server) GetPendingShipments(c echo.Context) error {
	rows, err := s.handlers.PendingShipments.Handle(c.Request().Context(), queries.NewGetPendingShipmentsQuery())
	if err != nil {
		return err
	}

	resp := make([]PendingShipmentResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, PendingShipmentResponse{
			ID:           r.ID.Bytes(),
			Number:       r.Number,
			OrderID:      r.OrderID.Bytes(),
			OrderNumber:  r.OrderNumber,
			Priority:     r.Priority.String(),
			PlannedStart: r.PlannedStart,
			PlannedEnd:   r.PlannedEnd,
			StopCount:    r.StopCount,
			Origin:       r.Origin,
			Destination:  r.Destination,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func requireActor(c echo.Context) (access.Actor, error) {
	actor, err := ActorFrom(c)
	if err != nil {
		return access.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required").SetInternal(err)
	}
	return actor, nil
}

func bindBody(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func shipmentIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "shipmentId", c.Param("shipmentId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipmentId", err)
	}
	shipmentID, err := kernelID(id)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipmentId", err)
	}
	return shipmentID, nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
