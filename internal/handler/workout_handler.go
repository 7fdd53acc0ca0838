package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/errcode"
	"github.com/mireo/fitvault/internal/pkg/response"
	"github.com/mireo/fitvault/internal/service"
)

type WorkoutHandler struct {
	workouts *service.WorkoutService
}

func NewWorkoutHandler(workouts *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	var req model.WorkoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	workoutID, err := h.workouts.Commit(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": workoutID})
}

func (h *WorkoutHandler) List(c *gin.Context) {
	workouts, err := h.workouts.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, workouts)
}

func (h *WorkoutHandler) Get(c *gin.Context) {
	workout, err := h.workouts.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, workout)
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	if err := h.workouts.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
