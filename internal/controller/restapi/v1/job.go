package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Media-Processor/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Processor/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/Media-Processor/internal/dto"
	"github.com/andreyxaxa/Media-Processor/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Queue an asset transformation
// @Description Assigns a request id, persists the job and schedules async processing
// @Tags 		jobs
// @Accept 		json
// @Produce 	json
// @Param 		request body dto.IntakeRequest true "Job request"
// @Success 	200 {object} response.Queued
// @Failure 	400 {object} response.Error "Missing required fields"
// @Failure 	500 {object} response.Error "Dispatch failure"
// @Router 		/v1/transform [post]
func (r *V1) transformAsset(ctx *fiber.Ctx) error {
	var req dto.IntakeRequest

	// 1. parse body
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	// 2. required fields
	if err := validate.IntakeRequest(req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	// 3. dispatch
	j, err := r.jobs.Enqueue(ctx.UserContext(), req)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - transformAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "failed to queue job")
	}

	r.metrics.JobsQueued.Inc()

	// all downstream outcomes are visible only through the log trail
	return ctx.Status(http.StatusOK).JSON(response.Queued{
		Status:    "queued",
		RequestID: j.RequestID.String(),
	})
}

// @Summary  	Get the audit trail for an asset
// @Description Returns the log document with request entries and events
// @Tags 		jobs
// @Produce 	json
// @Param 		originalUrl query string true "Original asset URL"
// @Success 	200 {object} entity.LogDocument
// @Failure 	400 {object} response.Error "Missing originalUrl"
// @Failure 	404 {object} response.Error "No log for this URL"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/logs [get]
func (r *V1) getAssetLog(ctx *fiber.Ctx) error {
	originalURL := ctx.Query("originalUrl")
	if originalURL == "" {
		return errorResponse(ctx, http.StatusBadRequest, "originalUrl is required")
	}

	doc, err := r.jobs.GetLog(ctx.UserContext(), originalURL)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "no log for this URL")
		}
		r.logger.Error(err, "restapi - v1 - getAssetLog")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(doc)
}

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}
