package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc *Service
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts every trivia route on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/search", h.HandleSearch)
	mux.HandleFunc("/questions/{id}", h.HandleQuestion)
	mux.HandleFunc("/quizzes", h.HandleQuizzes)
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	resp, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleQuestions handles GET /questions?page=N and POST /questions
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		resp, err := h.svc.Questions(r.Context(), PageFromQuery(r.URL.Query()))
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req CreateQuestionRequest
		if err := DecodeRequest(r.Body, &req); err != nil {
			h.respondErr(w, r, err)
			return
		}
		resp, err := h.svc.CreateQuestion(r.Context(), req)
		if err != nil {
			h.respondErr(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// HandleQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	resp, err := h.svc.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSearch handles POST /questions/search?page=N
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	var req SearchRequest
	if err := DecodeRequest(r.Body, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}
	resp, err := h.svc.SearchQuestions(r.Context(), req, PageFromQuery(r.URL.Query()))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	resp, err := h.svc.QuestionsByCategory(r.Context(), id, PageFromQuery(r.URL.Query()))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleQuizzes handles POST /quizzes
func (h *HTTPHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	var req QuizRequest
	if err := DecodeRequest(r.Body, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}
	resp, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Debug().Str("field", verr.Field).Msg(verr.Reason)
		httperrors.RespondValidationError(w, verr.Field, verr.Error())
	case errors.Is(err, ErrBadRequest):
		logger.Error().Err(err).Msg("request rejected after store failure")
		httperrors.RespondBadRequest(w)
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	default:
		logger.Error().Err(err).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

// pathID parses the {id} segment. Only non-negative integers match the route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		httperrors.RespondInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
