package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Store implements trivia.Store with gorm.
type Store struct {
	db *gorm.DB
}

var _ trivia.Store = (*Store)(nil)

// Dialector picks the gorm driver for the configured STORE_DRIVER.
func Dialector(cfg *config.App) (gorm.Dialector, error) {
	switch cfg.Store.Driver {
	case config.DriverGormPostgres:
		return postgres.Open(cfg.Postgres.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.Store.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Store.Driver)
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

// Open connects through dialector and routes gorm's logs into logger.
func Open(dialector gorm.Dialector, logger zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(gormWriter{logger: logger.With().Str("component", "gorm").Logger()}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the tables and seeds the default categories when none exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&categoryModel{}, &questionModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&categoryModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	seed := make([]categoryModel, len(DefaultCategories))
	for i, c := range DefaultCategories {
		seed[i] = categoryModel{ID: c.ID, Type: c.Type}
	}
	if err := s.db.WithContext(ctx).Create(&seed).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	var rows []categoryModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]trivia.Category, len(rows))
	for i, row := range rows {
		out[i] = trivia.Category{ID: row.ID, Type: row.Type}
	}
	return out, nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	var rows []questionModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (trivia.Question, error) {
	var row questionModel
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trivia.Question{}, trivia.ErrNotFound
		}
		return trivia.Question{}, fmt.Errorf("query question: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&questionModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete question: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

func (s *Store) InsertQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	row := questionModel{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return trivia.Question{}, &trivia.ValidationError{Field: "category", Reason: "does not exist"}
		}
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return row.toDomain(), nil
}

// SearchQuestions lowers both sides so matching is case-insensitive on every dialect.
func (s *Store) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	var rows []questionModel
	pattern := "%" + repository.EscapeLike(term) + "%"
	err := s.db.WithContext(ctx).
		Where(`LOWER(question) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]trivia.Question, error) {
	var rows []questionModel
	err := s.db.WithContext(ctx).Where("category = ?", categoryID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query category questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}
