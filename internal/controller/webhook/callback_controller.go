package webhook

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/service"
	"github.com/rs/zerolog/log"
)

type CallbackController struct {
	asyncService service.AsyncGenerationService
}

func NewCallbackController(asyncService service.AsyncGenerationService) *CallbackController {
	return &CallbackController{asyncService: asyncService}
}

// GenerationCallback godoc
// @Summary (Generator) Report the result of an asynchronous generation job
// @Description Inbound webhook for the external generator. Carries the job identifier and either the generated question payload or an error indicator.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param callback_data body dto.GenerationCallbackRequest true "Job identifier plus questions or error"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid callback body"
// @Failure 404 {object} dto.ErrorResponse "Job unknown or expired"
// @Failure 409 {object} dto.ErrorResponse "Job is not awaiting a callback"
// @Router /webhooks/generation-callback [post]
func (c *CallbackController) GenerationCallback(ctx *gin.Context) {
	var req dto.GenerationCallbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GenerationCallback: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid callback body", Details: []string{err.Error()}})
		return
	}

	err := c.asyncService.HandleCallback(req)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"status": "accepted"})
	case errors.Is(err, service.ErrJobNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Generation job not found; it may have expired"})
	case errors.Is(err, service.ErrJobNotProcessing):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Generation job is not awaiting a result"})
	default:
		log.Error().Err(err).Str("jobID", req.JobID).Msg("GenerationCallback: Unexpected service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process callback", Details: []string{err.Error()}})
	}
}
