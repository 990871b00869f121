package handler

import (
	"net/http"

	md "github.com/hsalamardi/lending-service/pkg/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hsalamardi/lending-service/internal/errs"
	"github.com/hsalamardi/lending-service/internal/model"
	"github.com/hsalamardi/lending-service/pkg/validate"
)

type Handler struct {
	lendingSvc     LendingService
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(lendingSvc LendingService, reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc:     lendingSvc,
		reservationSvc: reservationSvc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/loans/requests", h.SubmitBorrowRequest)
	api.GET("/loans/requests", h.ListBorrowRequests)
	api.POST("/loans/requests/:requestUid/approve", h.ApproveBorrowRequest)
	api.POST("/loans/requests/:requestUid/deny", h.DenyBorrowRequest)
	api.POST("/loans/:loanUid/return", h.ReturnLoan)
	api.GET("/loans", h.ListMemberLoans)

	api.POST("/returns/requests", h.SubmitReturnRequest)
	api.POST("/returns/requests/:requestUid/approve", h.ApproveReturnRequest)
	api.POST("/returns/requests/:requestUid/deny", h.DenyReturnRequest)

	api.POST("/reservations", h.Reserve)
	api.GET("/reservations", h.ListMemberReservations)
	api.POST("/reservations/:reservationUid/cancel", h.CancelReservation)

	api.GET("/books/:bookUid", h.GetBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps the domain error taxonomy onto HTTP statuses:
// not-found 404, precondition failures 400, conflicts 409, the rest 500.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrBookUnavailable),
		errors.Is(err, errs.ErrBookIsAvailable),
		errors.Is(err, errs.ErrMemberIneligible):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrBookNoLongerAvailable),
		errors.Is(err, errs.ErrDuplicateRequest),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrRequestProcessed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) SubmitBorrowRequest(c echo.Context) error {
	var req model.CreateBorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.lendingSvc.SubmitBorrowRequest(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListBorrowRequests(c echo.Context) error {
	status := model.RequestStatus(c.QueryParam("status"))
	items, err := h.lendingSvc.ListBorrowRequests(c.Request().Context(), status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ApproveBorrowRequest(c echo.Context) error {
	requestUid := c.Param("requestUid")
	if requestUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	var req model.ApproveBorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	loan, err := h.lendingSvc.ApproveBorrowRequest(c.Request().Context(), requestUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DenyBorrowRequest(c echo.Context) error {
	requestUid := c.Param("requestUid")
	if requestUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	var req model.DenyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.lendingSvc.DenyBorrowRequest(c.Request().Context(), requestUid, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.lendingSvc.ReturnLoan(c.Request().Context(), loanUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ListMemberLoans(c echo.Context) error {
	memberUid := c.QueryParam("memberUid")
	if memberUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "memberUid is empty")
	}
	items, err := h.lendingSvc.ListMemberLoans(c.Request().Context(), memberUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SubmitReturnRequest(c echo.Context) error {
	var req model.CreateReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.lendingSvc.SubmitReturnRequest(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ApproveReturnRequest(c echo.Context) error {
	requestUid := c.Param("requestUid")
	if requestUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	loan, err := h.lendingSvc.ApproveReturnRequest(c.Request().Context(), requestUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DenyReturnRequest(c echo.Context) error {
	requestUid := c.Param("requestUid")
	if requestUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "requestUid is empty")
	}
	var req model.DenyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.lendingSvc.DenyReturnRequest(c.Request().Context(), requestUid, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reserve(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.reservationSvc.Reserve(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListMemberReservations(c echo.Context) error {
	memberUid := c.QueryParam("memberUid")
	if memberUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "memberUid is empty")
	}
	items, err := h.reservationSvc.ListMemberReservations(c.Request().Context(), memberUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	memberUid := c.QueryParam("memberUid")
	if memberUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "memberUid is empty")
	}

	resp, err := h.reservationSvc.CancelReservation(c.Request().Context(), reservationUid, memberUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookUid := c.Param("bookUid")
	book, err := h.lendingSvc.GetBook(c.Request().Context(), bookUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}
