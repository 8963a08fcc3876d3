package repository

import (
	"errors"
	"time"

	"github.com/lampstand/berea/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	// CreateWithQuestions persists the quiz and its questions in one
	// transaction and flips the quiz out of draft once the questions are in.
	CreateWithQuestions(quiz *model.Quiz, questions []model.Question) error
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindAllWithQuestionCount() ([]QuizWithQuestionCount, error)
	// FindRecentByTitleAndCreator returns the most recent non-deleted quiz
	// with the given title created by the same requester since the cutoff,
	// or nil when there is none. Backs the duplicate-submission guard.
	FindRecentByTitleAndCreator(title string, createdBy uint, since time.Time) (*model.Quiz, error)
	UpdateStatus(id uint, status string) error
}

type QuizWithQuestionCount struct {
	model.Quiz
	QuestionCount int
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) CreateWithQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		quiz.Status = model.QuizStatusDraft
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		quiz.Status = model.QuizStatusReady
		quiz.Questions = questions
		return tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Update("status", model.QuizStatusReady).Error
	})
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_quiz ASC")
	}).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllWithQuestionCount() ([]QuizWithQuestionCount, error) {
	var results []QuizWithQuestionCount
	err := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id AND questions.deleted_at IS NULL) as question_count").
		Order("quizzes.created_at DESC").
		Where("quizzes.deleted_at IS NULL").
		Scan(&results).Error
	return results, err
}

func (r *quizRepository) FindRecentByTitleAndCreator(title string, createdBy uint, since time.Time) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Where("title = ? AND created_by = ? AND created_at >= ?", title, createdBy, since).
		Order("created_at DESC").
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Quiz{}).Where("id = ?", id).Update("status", status).Error
}
