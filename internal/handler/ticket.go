package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenwave/conference-ticketing/internal/model"
	"github.com/greenwave/conference-ticketing/internal/repository"
	"github.com/greenwave/conference-ticketing/internal/service"
)

// TicketHandler exposes the catalog and the purchase/upgrade/cancel
// operations on the attendee's pass.
type TicketHandler struct {
	Svc *service.Ticketing
}

func NewTicketHandler(svc *service.Ticketing) *TicketHandler {
	if svc == nil {
		panic("nil service passed to NewTicketHandler")
	}
	return &TicketHandler{Svc: svc}
}

type ticketTypePart struct {
	Name        string   `json:"name"`
	PriceCents  uint32   `json:"price_cents"`
	Exhibitions []string `json:"exhibitions"`
}

// ListTypes handles GET /v1/ticket-types. The catalog is static so the
// response is safe to cache.
func (h *TicketHandler) ListTypes(c echo.Context) error {
	types := h.Svc.TicketTypes()
	out := make([]ticketTypePart, 0, len(types))
	for _, t := range types {
		out = append(out, ticketTypePart{Name: t.Name, PriceCents: t.PriceCents, Exhibitions: t.Exhibitions})
	}
	return c.JSON(http.StatusOK, out)
}

type purchaseReq struct {
	TicketType string `json:"ticket_type"`
	Method     string `json:"method"`
}
type upgradeReq struct {
	TicketType string `json:"ticket_type"`
}

type purchaseResp struct {
	TicketID    uint64   `json:"ticket_id"`
	PaymentID   uint64   `json:"payment_id"`
	AmountCents uint32   `json:"amount_cents"`
	Pass        passPart `json:"pass"`
}

// Purchase handles POST /v1/tickets/purchase. A fresh purchase
// replaces the current pass and clears all reservations made under it.
func (h *TicketHandler) Purchase(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Purchase(ctx, attendeeID, req.TicketType, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTicketType), errors.Is(err, service.ErrUnknownPaymentMethod):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrAttendeeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}
	return c.JSON(http.StatusCreated, toPurchaseResp(res))
}

// Upgrade handles POST /v1/tickets/upgrade. Only a strictly higher
// tier is accepted and only the price difference is charged;
// reservations survive an upgrade.
func (h *TicketHandler) Upgrade(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req upgradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Upgrade(ctx, attendeeID, req.TicketType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTicketType):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNoActivePass):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active pass"})
		case errors.Is(err, service.ErrInvalidUpgrade):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "upgrade must be to a strictly higher tier"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upgrade failed"})
	}
	return c.JSON(http.StatusOK, toPurchaseResp(res))
}

// Cancel handles POST /v1/tickets/cancel. Only the pass is cleared:
// tickets, payments and past reservations remain on record, and
// reserved workshop seats are not released.
func (h *TicketHandler) Cancel(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.Cancel(ctx, attendeeID); err != nil {
		if errors.Is(err, service.ErrNoActivePass) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no active pass"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func toPurchaseResp(res service.PurchaseResult) purchaseResp {
	pass := passPart{TicketType: res.Pass.TicketType}
	if tt, ok := model.TicketTypeByName(res.Pass.TicketType); ok {
		pass.Exhibitions = tt.Exhibitions
	}
	return purchaseResp{
		TicketID:    res.Ticket.ID,
		PaymentID:   res.Payment.ID,
		AmountCents: res.Payment.AmountCents,
		Pass:        pass,
	}
}
