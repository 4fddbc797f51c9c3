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

// AccountHandler exposes the authenticated attendee's own account:
// profile, credential changes and deletion.
type AccountHandler struct {
	Svc *service.Ticketing
}

func NewAccountHandler(svc *service.Ticketing) *AccountHandler {
	if svc == nil {
		panic("nil service passed to NewAccountHandler")
	}
	return &AccountHandler{Svc: svc}
}

type passPart struct {
	TicketType  string   `json:"ticket_type"`
	Exhibitions []string `json:"exhibitions"`
}
type reservationPart struct {
	WorkshopID    uint64 `json:"workshop_id"`
	WorkshopTitle string `json:"workshop_title"`
}
type ticketPart struct {
	ID         uint64    `json:"id"`
	TicketType string    `json:"ticket_type"`
	PaymentID  uint64    `json:"payment_id"`
	CreatedAt  time.Time `json:"created_at"`
}
type paymentPart struct {
	ID          uint64    `json:"id"`
	Method      string    `json:"method"`
	AmountCents uint32    `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}
type profileResp struct {
	Attendee     attendeePart      `json:"attendee"`
	Pass         *passPart         `json:"pass"`
	Reservations []reservationPart `json:"reservations"`
	Tickets      []ticketPart      `json:"tickets"`
	Payments     []paymentPart     `json:"payments"`
}

// Me handles GET /v1/me. It returns the full account overview: the
// attendee, the current pass with its granted exhibitions, and the
// reservation and purchase history.
func (h *AccountHandler) Me(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Svc.GetProfile(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}

	resp := profileResp{
		Attendee:     attendeePart{ID: p.Attendee.ID, Username: p.Attendee.Username, Email: p.Attendee.Email},
		Reservations: make([]reservationPart, 0, len(p.Reservations)),
		Tickets:      make([]ticketPart, 0, len(p.Tickets)),
		Payments:     make([]paymentPart, 0, len(p.Payments)),
	}
	if p.Pass != nil {
		part := passPart{TicketType: p.Pass.TicketType}
		if tt, ok := model.TicketTypeByName(p.Pass.TicketType); ok {
			part.Exhibitions = tt.Exhibitions
		}
		resp.Pass = &part
	}
	for _, r := range p.Reservations {
		resp.Reservations = append(resp.Reservations, reservationPart{WorkshopID: r.WorkshopID, WorkshopTitle: r.WorkshopTitle})
	}
	for _, t := range p.Tickets {
		resp.Tickets = append(resp.Tickets, ticketPart{ID: t.ID, TicketType: t.TicketType, PaymentID: t.PaymentID, CreatedAt: t.CreatedAt})
	}
	for _, pm := range p.Payments {
		resp.Payments = append(resp.Payments, paymentPart{ID: pm.ID, Method: pm.Method, AmountCents: pm.AmountCents, CreatedAt: pm.CreatedAt})
	}
	return c.JSON(http.StatusOK, resp)
}

type modifyReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Modify handles PATCH /v1/me. Only the fields present in the body are
// changed; email format and password strength are not validated.
func (h *AccountHandler) Modify(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req modifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == nil && req.Password == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.UpdateCredentials(ctx, attendeeID, req.Email, req.Password); err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/me. The pass and reservations go with the
// account; ticket and payment history is retained as an audit trail.
func (h *AccountHandler) Delete(c echo.Context) error {
	attendeeID, err := getAttendeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.DeleteAccount(ctx, attendeeID); err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
