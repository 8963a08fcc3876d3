package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/model"
	"github.com/lampstand/berea/internal/repository"
)

// fakeQuizRepo is an in-memory repository.QuizRepository.
type fakeQuizRepo struct {
	quizzes   map[uint]*model.Quiz
	questions map[uint][]model.Question
	nextID    uint
	failWith  error
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		quizzes:   make(map[uint]*model.Quiz),
		questions: make(map[uint][]model.Question),
		nextID:    1,
	}
}

func (f *fakeQuizRepo) Create(quiz *model.Quiz) error {
	if f.failWith != nil {
		return f.failWith
	}
	quiz.ID = f.nextID
	f.nextID++
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}
	cp := *quiz
	f.quizzes[quiz.ID] = &cp
	return nil
}

func (f *fakeQuizRepo) CreateWithQuestions(quiz *model.Quiz, questions []model.Question) error {
	if err := f.Create(quiz); err != nil {
		return err
	}
	for i := range questions {
		questions[i].QuizID = quiz.ID
		questions[i].ID = uint(i + 1)
	}
	quiz.Status = model.QuizStatusReady
	quiz.Questions = questions
	f.quizzes[quiz.ID].Status = model.QuizStatusReady
	f.questions[quiz.ID] = questions
	return nil
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, fmt.Errorf("quiz %d not found", id)
	}
	return quiz, nil
}

func (f *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	quiz, err := f.FindByID(id)
	if err != nil {
		return nil, err
	}
	cp := *quiz
	cp.Questions = f.questions[id]
	return &cp, nil
}

func (f *fakeQuizRepo) FindAllWithQuestionCount() ([]repository.QuizWithQuestionCount, error) {
	var out []repository.QuizWithQuestionCount
	for id, quiz := range f.quizzes {
		out = append(out, repository.QuizWithQuestionCount{Quiz: *quiz, QuestionCount: len(f.questions[id])})
	}
	return out, nil
}

func (f *fakeQuizRepo) FindRecentByTitleAndCreator(title string, createdBy uint, since time.Time) (*model.Quiz, error) {
	for _, quiz := range f.quizzes {
		if quiz.Title == title && quiz.CreatedBy == createdBy && !quiz.CreatedAt.Before(since) {
			return quiz, nil
		}
	}
	return nil, nil
}

func (f *fakeQuizRepo) UpdateStatus(id uint, status string) error {
	quiz, ok := f.quizzes[id]
	if !ok {
		return fmt.Errorf("quiz %d not found", id)
	}
	quiz.Status = status
	return nil
}

// fakeQuestionRepo is an in-memory repository.QuestionRepository.
type fakeQuestionRepo struct {
	byQuiz   map[uint][]model.Question
	failWith error
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{byQuiz: make(map[uint][]model.Question)}
}

func (f *fakeQuestionRepo) Create(q *model.Question) error {
	return f.CreateBatch([]model.Question{*q})
}

func (f *fakeQuestionRepo) CreateBatch(questions []model.Question) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, q := range questions {
		f.byQuiz[q.QuizID] = append(f.byQuiz[q.QuizID], q)
	}
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	return nil, fmt.Errorf("question %d not found", id)
}

func (f *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	return f.byQuiz[quizID], nil
}

func (f *fakeQuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	return int64(len(f.byQuiz[quizID])), nil
}

func (f *fakeQuestionRepo) Delete(id uint) error { return nil }

// fakeGenerator scripts the generator client's behavior.
type fakeGenerator struct {
	configured   bool
	questions    []generator.GeneratedQuestion
	generateErr  error
	ackErr       error
	generateSeen []generator.Request
	ackSeen      chan generator.Request
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{configured: true, ackSeen: make(chan generator.Request, 4)}
}

func (f *fakeGenerator) Generate(ctx context.Context, req generator.Request) ([]generator.GeneratedQuestion, error) {
	f.generateSeen = append(f.generateSeen, req)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.questions, nil
}

func (f *fakeGenerator) Acknowledge(ctx context.Context, req generator.Request) error {
	f.ackSeen <- req
	return f.ackErr
}

func (f *fakeGenerator) Configured() bool { return f.configured }

func sampleQuestions() []generator.GeneratedQuestion {
	return []generator.GeneratedQuestion{
		{
			Text:          "Who denied Jesus three times?",
			Options:       map[string]string{"A": "Peter", "B": "Judas", "C": "Thomas", "D": "John"},
			CorrectAnswer: "A",
			Reference:     "Luke 22:61",
			Book:          "Luke",
			ChapterVerse:  "22:61",
		},
		{
			Text:          "On which day did God rest?",
			Options:       map[string]string{"A": "Sixth", "B": "Seventh", "C": "First", "D": "Third"},
			CorrectAnswer: "B",
			Reference:     "Genesis 2:2",
			Book:          "Genesis",
			ChapterVerse:  "2:2",
		},
	}
}
