package api

import (
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"
)

// GameHandler groups all game-related HTTP handlers: profile, catalogs,
// goals and battles.
type GameHandler struct {
	repo  storage.Repository
	eng   *engine.Engine
	rolls engine.Roller
}

// NewGameHandler creates a new GameHandler. The roller is shared with the
// engine so battle spawns and turn resolution draw from one source.
func NewGameHandler(repo storage.Repository, eng *engine.Engine, rolls engine.Roller) *GameHandler {
	return &GameHandler{repo: repo, eng: eng, rolls: rolls}
}
