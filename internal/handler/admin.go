package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greenwave/conference-ticketing/internal/config"
	"github.com/greenwave/conference-ticketing/internal/middleware"
	"github.com/greenwave/conference-ticketing/internal/service"
	"github.com/greenwave/conference-ticketing/internal/utils"
)

// AdminHandler serves the back-office endpoints: admin login, the
// daily sales reports and the workshop occupancy view. There is a
// single configured administrator; logging in issues a short-lived
// access token with the ADMIN role and no refresh token.
type AdminHandler struct {
	Cfg config.Config
	Svc *service.Ticketing
}

func NewAdminHandler(cfg config.Config, svc *service.Ticketing) *AdminHandler {
	if svc == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Svc: svc}
}

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminLoginResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login handles POST /v1/admin/login.
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Svc.ValidateAdmin(req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	// sub 0: the administrator is not a registered attendee account.
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, 0, req.Username, middleware.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}
	return c.JSON(http.StatusOK, adminLoginResp{AccessToken: access.Token, ExpiresAt: access.Exp})
}

type salesReportPart struct {
	Date            string `json:"date"`
	TicketsSold     uint32 `json:"tickets_sold"`
	TotalSalesCents uint64 `json:"total_sales_cents"`
}

// SalesReports handles GET /v1/admin/sales-reports. Reports exist only
// for dates on which at least one sale was recorded, ordered by date.
func (h *AdminHandler) SalesReports(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reports, err := h.Svc.SalesReports(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list sales reports failed"})
	}
	out := make([]salesReportPart, 0, len(reports))
	for _, r := range reports {
		out = append(out, salesReportPart{Date: r.Date, TicketsSold: r.TicketsSold, TotalSalesCents: r.TotalSalesCents})
	}
	return c.JSON(http.StatusOK, out)
}

// Workshops handles GET /v1/admin/workshops, the occupancy view.
func (h *AdminHandler) Workshops(c echo.Context) error {
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
