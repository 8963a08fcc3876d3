package educator

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	generationService service.GenerationService
	asyncService      service.AsyncGenerationService
	quizService       service.QuizService
}

func NewQuizController(
	generationService service.GenerationService,
	asyncService service.AsyncGenerationService,
	quizService service.QuizService,
) *QuizController {
	return &QuizController{
		generationService: generationService,
		asyncService:      asyncService,
		quizService:       quizService,
	}
}

// CreateQuiz godoc
// @Summary (Educator) Create a quiz and wait for generated questions
// @Description Creates a quiz and blocks until the generator returns questions or the hard timeout elapses. On timeout the quiz is filled with placeholder questions and timed_out is true.
// @Tags Educator - Quizzes
// @Accept json
// @Produce json
// @Param quiz_data body dto.CreateQuizRequest true "Quiz metadata, source documents and generation filters"
// @Success 201 {object} dto.SyncGenerationResponseDTO "Quiz created with generated or placeholder questions"
// @Failure 400 {object} dto.ErrorResponse "Invalid input (e.g. start time too soon)"
// @Failure 404 {object} dto.ErrorResponse "Generator could not find the referenced content"
// @Failure 409 {object} dto.ConflictResponseDTO "Duplicate recent submission"
// @Failure 422 {object} dto.ErrorResponse "Generator cannot process the source content"
// @Failure 429 {object} dto.ErrorResponse "Generator is busy, try again later"
// @Failure 502 {object} dto.ErrorResponse "Generator internal error"
// @Router /educator/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuiz: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.generationService.CreateQuiz(ctx.Request.Context(), req)
	if err != nil {
		respondCreationError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateQuizAsync godoc
// @Summary (Educator) Create a quiz with background question generation
// @Description Registers a generation job, fires the generator without waiting for content, and returns immediately with a poll URL.
// @Tags Educator - Quizzes
// @Accept json
// @Produce json
// @Param quiz_data body dto.CreateQuizRequest true "Quiz metadata, source documents and generation filters"
// @Success 202 {object} dto.AsyncGenerationResponseDTO "Job registered; poll status_url for progress"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ConflictResponseDTO "Duplicate recent submission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /educator/quizzes/async [post]
func (c *QuizController) CreateQuizAsync(ctx *gin.Context) {
	var req dto.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuizAsync: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.asyncService.StartGeneration(req)
	if err != nil {
		respondCreationError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, resp)
}

// GetGenerationStatus godoc
// @Summary Poll the status of a generation job
// @Description Returns the job's status, progress, message, error and generated-question count. A missing job means it expired or never existed; clients should treat that as failure.
// @Tags Educator - Quizzes
// @Produce json
// @Param job_id query string true "Generation job identifier"
// @Success 200 {object} dto.JobStatusDTO
// @Failure 400 {object} dto.ErrorResponse "Missing job_id"
// @Failure 404 {object} dto.ErrorResponse "Job unknown or expired"
// @Router /quizzes/generation-status [get]
func (c *QuizController) GetGenerationStatus(ctx *gin.Context) {
	jobID := ctx.Query("job_id")
	if jobID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "job_id query parameter is required"})
		return
	}

	status, err := c.asyncService.JobStatus(jobID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Generation job not found; it may have expired"})
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// GetAllQuizzes godoc
// @Summary List quizzes
// @Produce json
// @Tags Quizzes
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAllQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("GetAllQuizzes: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuizDetails godoc
// @Summary Get a quiz with its questions
// @Produce json
// @Tags Quizzes
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuizDetails(ctx *gin.Context) {
	quizIDStr := ctx.Param("quiz_id")
	quizID, err := strconv.ParseUint(quizIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return
	}

	quiz, err := c.quizService.GetQuizDetails(uint(quizID))
	if err != nil {
		log.Warn().Err(err).Uint64("quizID", quizID).Msg("GetQuizDetails: Quiz not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// respondCreationError maps creation-flow errors onto the HTTP taxonomy
// shared by both creation endpoints.
func respondCreationError(ctx *gin.Context, err error) {
	var dup *service.DuplicateQuizError
	switch {
	case errors.Is(err, service.ErrStartTimeTooSoon):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &dup):
		ctx.JSON(http.StatusConflict, dto.ConflictResponseDTO{
			Message:        "A quiz with this title was just created; use it or wait a few minutes",
			ExistingQuizID: dup.ExistingQuizID,
		})
	case errors.Is(err, generator.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "The generator could not find the referenced content"})
	case errors.Is(err, generator.ErrBusy):
		ctx.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Message: "The question generator is busy, try again later"})
	case errors.Is(err, generator.ErrUnsupported):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "The source content cannot be used for question generation"})
	case errors.Is(err, generator.ErrInternal):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "The question generator failed", Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Msg("Quiz creation failed with an unexpected error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz", Details: []string{err.Error()}})
	}
}
