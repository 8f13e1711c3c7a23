package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SessionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	sessionService session.SessionService
}

func NewSessionHandler(sessionService session.SessionService) SessionHandler {
	return &sessionHandlerImpl{sessionService: sessionService}
}

func (h *sessionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req session.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.sessionService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session created", result)
}

func (h *sessionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *sessionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := session.SessionFilter{
		ClassID:     queryString(r, "class_id"),
		StudentID:   queryString(r, "student_id"),
		PeriodMonth: queryInt(r, "month"),
		PeriodYear:  queryInt(r, "year"),
	}
	if from := queryString(r, "date_from"); from != nil {
		if t, err := time.Parse("2006-01-02", *from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := queryString(r, "date_to"); to != nil {
		if t, err := time.Parse("2006-01-02", *to); err == nil {
			filter.DateTo = &t
		}
	}

	result, err := h.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *sessionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req session.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.sessionService.UpdateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *sessionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session deleted", nil)
}
