package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenwave/conference-ticketing/internal/repository"
	"github.com/greenwave/conference-ticketing/internal/service"
)

// WorkshopHandler exposes the public workshop catalog and attendee
// reservations.
type WorkshopHandler struct {
	Svc *service.Ticketing
}

func NewWorkshopHandler(svc *service.Ticketing) *WorkshopHandler {
	if svc == nil {
		panic("nil service passed to NewWorkshopHandler")
	}
	return &WorkshopHandler{Svc: svc}
}

type workshopPart struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Exhibition string `json:"exhibition"`
	Capacity   uint32 `json:"capacity"`
}

// List handles GET /v1/workshops. Guests can browse the catalog with
// remaining capacities before buying a ticket.
func (h *WorkshopHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	workshops, err := h.Svc.WorkshopOccupancy(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list workshops failed"})
	}
	out := make([]workshopPart, 0, len(workshops))
	for _, w := range workshops {
		out = append(out, workshopPart{ID: w.ID, Title: w.Title, Exhibition: w.Exhibition, Capacity: w.Capacity})
	}
	return c.JSON(http.StatusOK, out)
}

type reserveReq struct {
	Workshops []string `json:"workshops"`
}

type reserveResp struct {
	Reserved []reservationPart `json:"reserved"`
}

// Reserve handles POST /v1/reservations. Workshops are processed in
// the order given; on failure the response reports the offending
// workshop and how many earlier items of the same request were already
// applied, since those reservations are kept.
func (h *WorkshopHandler) Reserve(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Workshops) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "workshops is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	applied, err := h.Svc.Reserve(ctx, attendeeID, req.Workshops)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePass) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active pass"})
		}
		var resErr *service.ReservationError
		if errors.As(err, &resErr) {
			status := http.StatusUnprocessableEntity
			if errors.Is(resErr.Err, repository.ErrWorkshopNotFound) {
				status = http.StatusNotFound
			}
			return c.JSON(status, echo.Map{
				"error":    resErr.Err.Error(),
				"workshop": resErr.WorkshopTitle,
				"applied":  resErr.Applied,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
	}

	out := reserveResp{Reserved: make([]reservationPart, 0, len(applied))}
	for _, r := range applied {
		out.Reserved = append(out.Reserved, reservationPart{WorkshopID: r.WorkshopID, WorkshopTitle: r.WorkshopTitle})
	}
	return c.JSON(http.StatusCreated, out)
}
