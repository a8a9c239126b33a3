package delivery

import (
	"net/http"

	"voxplan-backend/internal/planner/domain"
	"voxplan-backend/internal/planner/usecase"

	"github.com/gin-gonic/gin"
)

// PlannerHandler handles the voice pipeline and history HTTP requests.
type PlannerHandler struct {
	plannerUsecase usecase.PlannerUsecase
}

func NewPlannerHandler(plannerUsecase usecase.PlannerUsecase) *PlannerHandler {
	return &PlannerHandler{
		plannerUsecase: plannerUsecase,
	}
}

// VoiceRequest carries one recording as a base64 data URI, the way the
// browser's MediaRecorder delivers it.
type VoiceRequest struct {
	AudioDataURI string `json:"audio_data_uri" binding:"required"`
	Context      string `json:"context"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Voice operations report pipeline failures inside the result body with a
// user-facing message, mirroring how the UI consumes them. Only malformed
// requests and missing records map to HTTP error codes.

// POST /api/voice/generate
func (h *PlannerHandler) GenerateFromVoice(c *gin.Context) {
	userID := c.GetString("userID")

	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.plannerUsecase.GenerateFromVoice(c.Request.Context(), userID, req.AudioDataURI, usecase.ContextHint(req.Context))
	c.JSON(http.StatusOK, res)
}

// POST /api/plans/:id/voice
func (h *PlannerHandler) UpdatePlanFromVoice(c *gin.Context) {
	userID := c.GetString("userID")
	planID := c.Param("id")

	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.plannerUsecase.UpdatePlanFromVoice(c.Request.Context(), userID, planID, req.AudioDataURI)
	if res.Error == "Plan not found." {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/itineraries/:id/voice
func (h *PlannerHandler) UpdateItineraryFromVoice(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.plannerUsecase.UpdateItineraryFromVoice(c.Request.Context(), userID, itineraryID, req.AudioDataURI)
	if res.Error == "Itinerary not found." {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/plans/:id/tasks/:taskId/subtasks/voice
func (h *PlannerHandler) AddSubtasksFromVoice(c *gin.Context) {
	userID := c.GetString("userID")
	planID := c.Param("id")
	taskID := c.Param("taskId")

	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.plannerUsecase.AddSubtasksFromVoice(c.Request.Context(), userID, planID, taskID, req.AudioDataURI)
	if res.Error == "Plan not found." || res.Error == "Task not found." {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/insights
func (h *PlannerHandler) GetInsights(c *gin.Context) {
	userID := c.GetString("userID")

	res := h.plannerUsecase.Insights(c.Request.Context(), userID)
	c.JSON(http.StatusOK, res)
}

// GET /api/plans
func (h *PlannerHandler) ListPlans(c *gin.Context) {
	userID := c.GetString("userID")

	plans, err := h.plannerUsecase.ListPlans(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GET /api/plans/:id
func (h *PlannerHandler) GetPlan(c *gin.Context) {
	userID := c.GetString("userID")
	planID := c.Param("id")

	plan, err := h.plannerUsecase.GetPlan(userID, planID)
	if err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DELETE /api/plans/:id
func (h *PlannerHandler) DeletePlan(c *gin.Context) {
	userID := c.GetString("userID")
	planID := c.Param("id")

	if err := h.plannerUsecase.DeletePlan(userID, planID); err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// PATCH /api/plans/:id/tasks/:taskId/status
func (h *PlannerHandler) SetTaskStatus(c *gin.Context) {
	userID := c.GetString("userID")
	planID := c.Param("id")
	taskID := c.Param("taskId")

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.plannerUsecase.SetTaskStatus(userID, planID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan or task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /api/itineraries
func (h *PlannerHandler) ListItineraries(c *gin.Context) {
	userID := c.GetString("userID")

	itineraries, err := h.plannerUsecase.ListItineraries(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"itineraries": itineraries})
}

// GET /api/itineraries/:id
func (h *PlannerHandler) GetItinerary(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	itinerary, err := h.plannerUsecase.GetItinerary(userID, itineraryID)
	if err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

// DELETE /api/itineraries/:id
func (h *PlannerHandler) DeleteItinerary(c *gin.Context) {
	userID := c.GetString("userID")
	itineraryID := c.Param("id")

	if err := h.plannerUsecase.DeleteItinerary(userID, itineraryID); err != nil {
		if usecase.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "itinerary deleted"})
}
