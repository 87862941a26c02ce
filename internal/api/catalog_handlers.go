package api

import (
	"net/http"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListHouses returns all houses.
func (h *GameHandler) ListHouses(c *gin.Context) {
	houses, err := h.repo.GetHouses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHouses})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(houses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHouses})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListInterests returns all interests with their house leanings.
func (h *GameHandler) ListInterests(c *gin.Context) {
	interests, err := h.repo.GetInterests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInterests})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(interests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInterests})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListSkills returns the full skill catalog.
func (h *GameHandler) ListSkills(c *gin.Context) {
	skills, err := h.repo.GetSkills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSkills})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(skills)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSkills})
		return
	}
	c.JSON(http.StatusOK, out)
}
