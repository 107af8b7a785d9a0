package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/errs"
	"github.com/deppfellow/kringe-music/internal/server"
	"github.com/deppfellow/kringe-music/internal/service"
	"github.com/deppfellow/kringe-music/internal/validation"
)

type FeedbackHandler struct {
	Handler
	feedback *service.FeedbackService
}

func NewFeedbackHandler(s *server.Server, feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		Handler:  NewHandler(s),
		feedback: feedback,
	}
}

// Rating accepts 4, 4.0 and "4". Anything that is not a number decodes to
// 0 and fails the range check instead of the whole request.
type Rating int

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if s, err := strconv.Unquote(string(data)); err == nil {
		data = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*r = 0
		return nil
	}
	*r = Rating(math.Trunc(f))
	return nil
}

var _ json.Unmarshaler = (*Rating)(nil)

type feedbackRequest struct {
	Email   string  `json:"email" validate:"required,email,max=100"`
	Rating  *Rating `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment" validate:"required,min=10,max=1000"`
}

func (r *feedbackRequest) Validate() error { return validation.Struct(r) }

func (r *feedbackRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *feedbackRequest) FieldMessages() map[string]string {
	return map[string]string{
		"email.required":   "Email обязателен для заполнения",
		"email.email":      "Введите корректный email адрес",
		"email.max":        "Email слишком длинный",
		"rating.required":  "Оценка обязательна",
		"rating":           "Оценка должна быть от 1 до 5",
		"comment.required": "Комментарий обязателен",
		"comment.min":      "Комментарий должен содержать минимум 10 символов",
		"comment.max":      "Комментарий слишком длинный (максимум 1000 символов)",
	}
}

type feedbackData struct {
	ID int `json:"id"`
}

type feedbackResponse struct {
	Status
	Errors errs.FieldErrors `json:"errors"`
	Data   feedbackData     `json:"data"`
}

func (h *FeedbackHandler) Submit(c echo.Context, req *feedbackRequest) (*feedbackResponse, error) {
	id, err := h.feedback.Submit(c.Request().Context(), service.FeedbackInput{
		Email:     req.Email,
		Rating:    int(*req.Rating),
		Comment:   req.Comment,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	return &feedbackResponse{
		Status: ok(service.MsgFeedbackThanks),
		Errors: errs.FieldErrors{},
		Data:   feedbackData{ID: id},
	}, nil
}
