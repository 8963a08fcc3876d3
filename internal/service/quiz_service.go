package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuizService interface {
	GetAllQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID uint) (*dto.QuizResponseDTO, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) GetAllQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzesWithCount, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get quizzes with question count from repository")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	var dtos []dto.QuizSummaryDTO
	for _, qwc := range quizzesWithCount {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:            qwc.Quiz.ID,
			Title:         qwc.Quiz.Title,
			Status:        qwc.Quiz.Status,
			CreatedBy:     qwc.Quiz.CreatedBy,
			QuestionCount: qwc.QuestionCount,
			StartTime:     qwc.Quiz.StartTime,
			CreatedAt:     qwc.Quiz.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *quizService) GetQuizDetails(quizID uint) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to get quiz details from repository")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to QuizResponseDTO")
		return nil, fmt.Errorf("error preparing quiz details response: %w", err)
	}
	fillQuestionOptions(&resp, quiz.Questions)
	return &resp, nil
}
