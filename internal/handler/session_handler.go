package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/akashduggal/passr-backend/internal/model"
	"github.com/akashduggal/passr-backend/internal/service"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

type SessionHandler struct {
	svc service.ConversationService
}

func NewSessionHandler(svc service.ConversationService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

func (h *SessionHandler) Create(c echo.Context) error {
	var params model.SessionParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	cv, err := h.svc.StartSession(c.Request().Context(), params)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionView(cv))
}

func (h *SessionHandler) Get(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	cv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionView(cv))
}

func (h *SessionHandler) End(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	if err := h.svc.End(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) ListMessages(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	msgs, isSeller, err := h.svc.ListMessages(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, toMessageView(m, isSeller))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *SessionHandler) SendMessage(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.SendMessage(c.Request().Context(), id, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	// a just-sent message always renders on the sender's own side
	view := MessageView{
		ID:               msg.ID,
		Text:             msg.Text,
		Sender:           string(msg.Sender),
		TimestampDisplay: timeutil.FormatClock(msg.Timestamp),
		Alignment:        string(model.AlignmentOwn),
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) AcceptOffer(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid session id"))
	}
	if _, err := h.svc.AcceptOffer(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	cv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionView(cv))
}

func sessionID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
