package http

import (
	"encoding/json"
	"net/http"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ClassHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Enroll(w http.ResponseWriter, r *http.Request)
	Unenroll(w http.ResponseWriter, r *http.Request)

	CreateCourse(w http.ResponseWriter, r *http.Request)
	ListCourses(w http.ResponseWriter, r *http.Request)
	UpdateCourse(w http.ResponseWriter, r *http.Request)
	DeleteCourse(w http.ResponseWriter, r *http.Request)
}

type classHandlerImpl struct {
	classService class.ClassService
}

func NewClassHandler(classService class.ClassService) ClassHandler {
	return &classHandlerImpl{classService: classService}
}

func (h *classHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req class.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.classService.CreateClass(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Class created", result)
}

func (h *classHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.classService.GetClass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.classService.ListClasses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req class.UpdateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.classService.UpdateClass(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.classService.DeleteClass(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Class deleted", nil)
}

func (h *classHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	var req class.EnrollStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ClassID = chi.URLParam(r, "id")

	result, err := h.classService.EnrollStudent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) Unenroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.classService.UnenrollStudent(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "studentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req class.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.classService.CreateCourse(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Course created", result)
}

func (h *classHandlerImpl) ListCourses(w http.ResponseWriter, r *http.Request) {
	result, err := h.classService.ListCourses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req class.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.classService.UpdateCourse(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *classHandlerImpl) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.classService.DeleteCourse(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Course deleted", nil)
}
