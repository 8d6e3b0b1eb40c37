package trivia

import (
	"net/url"
	"strconv"
)

// Paginate returns the 1-based page of items. Out-of-range pages yield an empty slice.
func Paginate[T any](page int, items []T) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageFromQuery reads ?page=N, falling back to 1 when missing or not an integer.
func PageFromQuery(values url.Values) int {
	raw := values.Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

func formatAll(questions []Question) []FormattedQuestion {
	out := make([]FormattedQuestion, len(questions))
	for i, q := range questions {
		out[i] = q.Format()
	}
	return out
}
