package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ListGoals returns the authenticated user's goals, newest first.
func (h *GameHandler) ListGoals(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	goals, err := h.repo.GetGoalsByUser(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGoals})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(goals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGoals})
		return
	}
	c.JSON(http.StatusOK, out)
}

type CreateGoalPayload struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Attribute    game.Attribute `json:"attribute"`
	RewardPoints int            `json:"reward_points"`
}

// CreateGoal stores a new habit goal tied to one battle attribute.
func (h *GameHandler) CreateGoal(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req CreateGoalPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g, err := service.CreateGoal(h.repo, u, service.CreateGoalRequest{
		Title:        req.Title,
		Description:  req.Description,
		Attribute:    req.Attribute,
		RewardPoints: req.RewardPoints,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyGoalTitle),
			errors.Is(err, service.ErrInvalidAttribute),
			errors.Is(err, service.ErrInvalidRewardPoints):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGoal})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGoal})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// CompleteGoal marks a goal done and pays its attribute reward.
func (h *GameHandler) CompleteGoal(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	goalID, err := strconv.ParseUint(c.Param("goalID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGoalID})
		return
	}

	g, err := service.CompleteGoal(h.repo, u, uint(goalID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGoalNotFound})
		case errors.Is(err, service.ErrGoalCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGoalAlreadyDone})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCompleteGoal})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(gin.H{"goal": g, "stats": u.Stats, "attribute_points": u.AttributePoints})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCompleteGoal})
		return
	}
	c.JSON(http.StatusOK, out)
}
