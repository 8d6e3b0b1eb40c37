package gormstore

import "github.com/gokatarajesh/trivia-api/internal/trivia"

type categoryModel struct {
	ID   int64  `gorm:"primaryKey"`
	Type string `gorm:"type:text;not null"`
}

func (categoryModel) TableName() string { return "categories" }

type questionModel struct {
	ID          int64         `gorm:"primaryKey"`
	Question    string        `gorm:"type:text;not null"`
	Answer      string        `gorm:"type:text;not null"`
	Category    int64         `gorm:"not null;index:idx_questions_category"`
	CategoryRef categoryModel `gorm:"foreignKey:Category;references:ID"`
	Difficulty  int           `gorm:"not null"`
}

func (questionModel) TableName() string { return "questions" }

func (m questionModel) toDomain() trivia.Question {
	return trivia.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

func toDomainQuestions(rows []questionModel) []trivia.Question {
	out := make([]trivia.Question, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}

// DefaultCategories mirrors the categories seeded by the SQL migrations.
var DefaultCategories = []trivia.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}
