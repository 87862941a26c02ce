package api

import (
	"errors"
	"net/http"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile with house, interests
// and equipped skills.
func (h *GameHandler) GetProfile(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, out)
}

// SpendAttributes assigns unspent attribute points to battle stats. The
// payload carries per-attribute increments, all applied atomically or not at
// all.
func (h *GameHandler) SpendAttributes(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var alloc game.Stats
	if err := c.ShouldBindJSON(&alloc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := service.SpendAttributePoints(h.repo, u, alloc); err != nil {
		switch {
		case errors.Is(err, service.ErrNotEnoughPoints):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPoints})
		case errors.Is(err, service.ErrNothingAllocated), errors.Is(err, service.ErrNegativeAllocation):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateProfile})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, out)
}

type EquipSkillsPayload struct {
	SkillIDs []uint `json:"skill_ids"`
}

// EquipSkills replaces the user's equipped skill loadout.
func (h *GameHandler) EquipSkills(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req EquipSkillsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := service.EquipSkills(h.repo, u, req.SkillIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrTooManySkills):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTooManySkills})
		case errors.Is(err, service.ErrUnknownSkill):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownSkill})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateProfile})
		}
		return
	}

	out, err := MarshalIntoSnakeTimestamps(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(http.StatusOK, out)
}
