package api

import (
	"net/http"

	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/gorilla/mux"
)

type CourseHandler struct {
	courseRepo repository.CourseRepo
}

func NewCourseHandler(cr repository.CourseRepo) *CourseHandler {
	return &CourseHandler{courseRepo: cr}
}

func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseRepo.ListCourses(r.Context())
	if err != nil {
		writeStoreError(w, "list courses", err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	course, err := h.courseRepo.GetCourseByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get course", err)
		return
	}
	if course == nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.CourseInput
	if err := decodeBody(r, &in); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if in.Title == "" || in.Provider == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	course, err := h.courseRepo.CreateCourse(r.Context(), in)
	if err != nil {
		writeStoreError(w, "create course", err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}
