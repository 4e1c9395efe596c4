package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/app/services"
	"github.com/yigit/institute/internal/middleware"
)

// BatchController handles batch endpoints
type BatchController struct {
	batchService services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// ListBatches lists all batches
// @Summary List batches
// @Description Lists batches with course, teacher and teacher user
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.BatchDTO} "Batches retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /batches [get]
func (c *BatchController) ListBatches(ctx *gin.Context) {
	batches, err := c.batchService.ListBatches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, batches, "")
}

// GetBatch retrieves a batch by ID
// @Summary Get batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.BatchDTO} "Batch retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid batch ID"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [get]
func (c *BatchController) GetBatch(ctx *gin.Context) {
	id, valid := pathID(ctx, "batch")
	if !valid {
		return
	}

	batch, err := c.batchService.GetBatch(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, batch, "")
}

// CreateBatch creates a batch running an existing course
// @Summary Create batch
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch information"
// @Success 201 {object} dto.APIResponse{data=dto.BatchDTO} "Batch created"
// @Failure 400 {object} dto.ErrorResponse "Missing name or unknown course"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	batch, err := c.batchService.CreateBatch(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, batch, "Batch created successfully")
}

// UpdateBatch applies a partial update
// @Summary Update batch
// @Description Only provided, non-empty fields change
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID" Format(int64) minimum(1)
// @Param request body dto.UpdateBatchRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.BatchDTO} "Batch updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or unknown course"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [put]
func (c *BatchController) UpdateBatch(ctx *gin.Context) {
	id, valid := pathID(ctx, "batch")
	if !valid {
		return
	}
	var req dto.UpdateBatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, batch, "Batch updated successfully")
}

// DeleteBatch deletes a batch
// @Summary Delete batch
// @Description Students of the batch remain, without a batch
// @Tags batches
// @Security BearerAuth
// @Param id path int true "Batch ID" Format(int64) minimum(1)
// @Success 204 "Batch deleted"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [delete]
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	id, valid := pathID(ctx, "batch")
	if !valid {
		return
	}
	if err := c.batchService.DeleteBatch(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
