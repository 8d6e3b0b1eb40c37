package trivia

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntAcceptsNumbersAndNumericStrings(t *testing.T) {
	cases := map[string]FlexInt{
		`3`:     3,
		`"3"`:   3,
		`" 7 "`: 7,
		`0`:     0,
		`"0"`:   0,
		`4.0`:   4,
		`-2`:    -2,
	}
	for raw, want := range cases {
		var got FlexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestFlexIntRejectsNonIntegers(t *testing.T) {
	for _, raw := range []string{`"abc"`, `2.5`, `true`, `{}`, `[]`, `""`, `1e30`, `"1e30"`, `-1e19`, `9223372036854775808`} {
		var got FlexInt
		assert.Error(t, json.Unmarshal([]byte(raw), &got), raw)
	}
}

func TestDecodeRequestRejectsBadBodies(t *testing.T) {
	for _, body := range []string{"", "   ", "{", "not json", `{"question": 5}`} {
		var req CreateQuestionRequest
		err := DecodeRequest(strings.NewReader(body), &req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, body)
		assert.True(t, errors.Is(err, ErrBadRequest), body)
	}
}

func TestDecodeRequestRejectsOversizedBody(t *testing.T) {
	body := `{"searchTerm":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	var req SearchRequest
	err := DecodeRequest(strings.NewReader(body), &req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "request body too large", verr.Reason)
}

func TestDecodeRequestReportsTypeErrorField(t *testing.T) {
	var req QuizRequest
	err := DecodeRequest(strings.NewReader(`{"quiz_category":{"id":1},"previous_questions":"nope"}`), &req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "previous_questions", verr.Field)
}

func TestDecodeRequestReportsFlexIntField(t *testing.T) {
	var req CreateQuestionRequest
	err := DecodeRequest(strings.NewReader(`{"question":"q","answer":"a","category":1,"difficulty":1e30}`), &req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "difficulty", verr.Field)
}

func TestDecodeRequestNilBody(t *testing.T) {
	var req SearchRequest
	assert.ErrorIs(t, DecodeRequest(nil, &req), ErrBadRequest)
}

func TestValidateCreateQuestion(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing question", `{"answer":"a","difficulty":1,"category":1}`, "question"},
		{"empty question", `{"question":"","answer":"a","difficulty":1,"category":1}`, "question"},
		{"empty answer", `{"question":"q","answer":"","difficulty":1,"category":1}`, "answer"},
		{"null answer", `{"question":"q","answer":null,"difficulty":1,"category":1}`, "answer"},
		{"missing difficulty", `{"question":"q","answer":"a","category":1}`, "difficulty"},
		{"missing category", `{"question":"q","answer":"a","difficulty":1}`, "category"},
		{"null body", `null`, "question"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req CreateQuestionRequest
			require.NoError(t, DecodeRequest(strings.NewReader(tc.body), &req))

			err := validateStruct(&req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.field+": is required", verr.Error())
		})
	}
}

func TestValidateCreateQuestionAcceptsZeroValues(t *testing.T) {
	var req CreateQuestionRequest
	require.NoError(t, DecodeRequest(strings.NewReader(`{"question":"q","answer":"a","difficulty":0,"category":"2"}`), &req))
	require.NoError(t, validateStruct(&req))

	nq := req.toNewQuestion()
	assert.Equal(t, 0, nq.Difficulty)
	assert.Equal(t, int64(2), nq.Category)
}

func TestValidateCreateQuestionDifficultyRange(t *testing.T) {
	for _, raw := range []string{`4294967299`, `"2147483648"`, `-2147483649`} {
		var req CreateQuestionRequest
		body := `{"question":"q","answer":"a","category":1,"difficulty":` + raw + `}`
		require.NoError(t, DecodeRequest(strings.NewReader(body), &req), raw)

		var verr *ValidationError
		require.ErrorAs(t, validateStruct(&req), &verr, raw)
		assert.Equal(t, "difficulty", verr.Field, raw)
		assert.Equal(t, "difficulty: is out of range", verr.Error(), raw)
	}

	var edge CreateQuestionRequest
	require.NoError(t, DecodeRequest(strings.NewReader(`{"question":"q","answer":"a","category":1,"difficulty":2147483647}`), &edge))
	assert.NoError(t, validateStruct(&edge))
}

func TestValidateSearch(t *testing.T) {
	var missing SearchRequest
	require.NoError(t, DecodeRequest(strings.NewReader(`{"term":"x"}`), &missing))
	var verr *ValidationError
	require.ErrorAs(t, validateStruct(&missing), &verr)
	assert.Equal(t, "searchTerm", verr.Field)

	var empty SearchRequest
	require.NoError(t, DecodeRequest(strings.NewReader(`{"searchTerm":""}`), &empty))
	assert.NoError(t, validateStruct(&empty))
}

func TestValidateQuiz(t *testing.T) {
	cases := []struct {
		body  string
		field string
	}{
		{`{"previous_questions":[]}`, "quiz_category"},
		{`{"quiz_category":{},"previous_questions":[]}`, "quiz_category.id"},
		{`{"quiz_category":{"id":0}}`, "previous_questions"},
	}
	for _, tc := range cases {
		var req QuizRequest
		require.NoError(t, DecodeRequest(strings.NewReader(tc.body), &req))

		var verr *ValidationError
		require.ErrorAs(t, validateStruct(&req), &verr, tc.body)
		assert.Equal(t, tc.field, verr.Field, tc.body)
	}

	var ok QuizRequest
	require.NoError(t, DecodeRequest(strings.NewReader(`{"quiz_category":{"id":"0","type":"click"},"previous_questions":[]}`), &ok))
	assert.NoError(t, validateStruct(&ok))
}
