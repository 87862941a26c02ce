package api

import (
	"errors"
	"net/http"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/logging"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	Difficulty game.Difficulty `json:"difficulty"`
}

// CreateBattle spawns a new battle against randomly drawn enemies.
func (h *GameHandler) CreateBattle(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, err := service.CreateBattle(c.Request.Context(), h.repo, h.rolls, u, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDifficulty):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldUserID:     u.ID,
		constants.LogFieldBattleCode: b.PublicCode,
		constants.LogFieldDifficulty: string(b.Difficulty),
	})

	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GetBattle returns a battle snapshot with participants, ordered by team and
// position. Only the owner can read it.
func (h *GameHandler) GetBattle(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code := normalizeBattleCode(c.Param("code"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	b, err := h.repo.GetBattleByCode(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if b.UserID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotBattleParticipant})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

type ExecuteTurnPayload struct {
	Actions []game.Action `json:"actions"`
}

// ExecuteTurn resolves one battle turn from the player's chosen actions.
func (h *GameHandler) ExecuteTurn(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code := normalizeBattleCode(c.Param("code"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	var req ExecuteTurnPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := service.ExecuteTurn(c.Request.Context(), h.repo, h.eng, u, code, req.Actions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotBattleParticipant})
		case errors.Is(err, service.ErrBattleFinished):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyOver})
		case errors.Is(err, service.ErrTurnConflict):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTurnAlreadyResolved})
		case errors.Is(err, service.ErrNoActions),
			errors.Is(err, service.ErrSkillNotFound),
			errors.Is(err, service.ErrSkillNotEquipped):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveTurn})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// ClaimRewards pays out experience and attribute points for a won battle.
func (h *GameHandler) ClaimRewards(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	code := normalizeBattleCode(c.Param("code"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	reward, err := service.ClaimRewards(h.repo, u, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotBattleParticipant})
		case errors.Is(err, service.ErrNotWinner):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotBattleWinner})
		case errors.Is(err, service.ErrBattleNotFinished):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleStillRunning})
		case errors.Is(err, service.ErrRewardClaimed):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRewardAlreadyClaimed})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedClaimRewards})
		}
		return
	}
	logging.Info("battle rewards claimed", logging.Fields{
		constants.LogFieldUserID:     u.ID,
		constants.LogFieldBattleCode: code,
		constants.LogFieldLevel:      u.Level,
	})

	out, err := MarshalIntoSnakeTimestamps(gin.H{
		"reward":           reward,
		"level":            u.Level,
		"experience":       u.Experience,
		"attribute_points": u.AttributePoints,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedClaimRewards})
		return
	}
	c.JSON(http.StatusOK, out)
}
