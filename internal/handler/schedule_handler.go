package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akashduggal/passr-backend/internal/service"
)

type ScheduleHandler struct {
	svc service.ScheduleService
}

func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

type SelectDateRequest struct {
	Date string `json:"date"` // 2006-01-02
}

type SelectTimeRequest struct {
	Time string `json:"time"` // 15:04
}

type SetNoteRequest struct {
	Note string `json:"note"`
}

type OpenScheduleResponse struct {
	Schedule    ScheduleView     `json:"schedule"`
	DateOptions []DateOptionView `json:"dateOptions"`
}

type ConfirmResponse struct {
	Confirmed bool         `json:"confirmed"`
	Message   *MessageView `json:"message,omitempty"`
	Schedule  ScheduleView `json:"schedule"`
}

func (h *ScheduleHandler) Open(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	cv, err := h.svc.Open(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	opts, err := h.svc.DateOptions(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, OpenScheduleResponse{
		Schedule:    toScheduleView(cv),
		DateOptions: toDateOptionViews(opts),
	})
}

func (h *ScheduleHandler) Dates(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	opts, err := h.svc.DateOptions(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toDateOptionViews(opts))
}

func (h *ScheduleHandler) SelectDate(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	var req SelectDateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date, want YYYY-MM-DD"))
	}
	cv, err := h.svc.SelectDate(c.Request().Context(), id, date)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toScheduleView(cv))
}

func (h *ScheduleHandler) SelectTime(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	var req SelectTimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	tm, err := time.Parse("15:04", req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid time, want HH:MM"))
	}
	cv, err := h.svc.SelectTime(c.Request().Context(), id, tm.Hour(), tm.Minute())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toScheduleView(cv))
}

func (h *ScheduleHandler) SetNote(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	var req SetNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	cv, err := h.svc.SetNote(c.Request().Context(), id, req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toScheduleView(cv))
}

func (h *ScheduleHandler) Confirm(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	res, err := h.svc.Confirm(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	resp := ConfirmResponse{
		Confirmed: res.Confirmed,
		Schedule:  toScheduleView(res.Session),
	}
	if res.Message != nil {
		v := toMessageView(*res.Message, res.Session.IsSeller)
		resp.Message = &v
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ScheduleHandler) Cancel(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
