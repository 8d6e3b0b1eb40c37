package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FlexInt decodes a JSON integer or a string holding one, e.g. 3 or "3".
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return flexIntError(data)
		}
		raw = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || fl != math.Trunc(fl) || math.IsInf(fl, 0) {
		return flexIntError(data)
	}
	// 2^63 is exact as a float64 and already overflows int64.
	if fl < math.MinInt64 || fl >= -math.MinInt64 {
		return flexIntError(data)
	}
	*f = FlexInt(fl)
	return nil
}

// flexIntError is a type error so encoding/json attaches the field path.
func flexIntError(data []byte) error {
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(FlexInt(0))}
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Question   string   `json:"question" validate:"required"`
	Answer     string   `json:"answer" validate:"required"`
	Difficulty *FlexInt `json:"difficulty" validate:"required,min=-2147483648,max=2147483647"`
	Category   *FlexInt `json:"category" validate:"required"`
}

func (r CreateQuestionRequest) toNewQuestion() NewQuestion {
	return NewQuestion{
		Question:   r.Question,
		Answer:     r.Answer,
		Difficulty: int(*r.Difficulty),
		Category:   int64(*r.Category),
	}
}

// SearchRequest is the body of POST /questions/search. An empty term matches everything.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

// QuizCategory selects the quiz pool; ID 0 means every category.
type QuizCategory struct {
	ID   *FlexInt `json:"id" validate:"required"`
	Type string   `json:"type"`
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions []int64       `json:"previous_questions" validate:"required"`
}

// MaxBodyBytes caps every decoded request body.
const MaxBodyBytes = 1 << 20

// DecodeRequest reads a JSON body into dst. Field rules are checked by the
// service. Every failure is a *ValidationError, which unwraps to ErrBadRequest.
func DecodeRequest(body io.Reader, dst any) error {
	if body == nil {
		return &ValidationError{Reason: "request body is required"}
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return &ValidationError{Reason: "could not read request body"}
	}
	if len(data) > MaxBodyBytes {
		return &ValidationError{Reason: "request body too large"}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &ValidationError{Reason: "request body is required"}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Field: typeErr.Field, Reason: "has an invalid type"}
		}
		return &ValidationError{Reason: "invalid JSON payload"}
	}
	return nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fieldPath(fe.Namespace()), Reason: reasonFor(fe.Tag())}
	}
	return &ValidationError{Reason: "invalid request"}
}

// fieldPath drops the root struct name: "QuizRequest.quiz_category.id" -> "quiz_category.id".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min", "max":
		return "is out of range"
	default:
		return "failed " + tag + " validation"
	}
}
