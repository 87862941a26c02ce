package main

import (
	"net/http"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/api"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

func buildRouter(repo storage.Repository, handler *api.GameHandler, authHandler *api.AuthHandler) *gin.Engine {
	router := gin.Default()
	router.Use(api.RequestID())

	router.GET(constants.RouteHealthz, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.POST(constants.RouteAuthRegister, authHandler.Register)
		apiRoutes.POST(constants.RouteAuthLogin, authHandler.Login)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
		apiRoutes.POST(constants.RouteAuthLogout, authHandler.Logout)

		// Catalogs are public so the registration screen can offer the
		// interest choices before an account exists.
		apiRoutes.GET(constants.RouteHouses, handler.ListHouses)
		apiRoutes.GET(constants.RouteInterests, handler.ListInterests)
		apiRoutes.GET(constants.RouteSkills, handler.ListSkills)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired(repo))

		protected.GET(constants.RouteProfile, handler.GetProfile)
		protected.PUT(constants.RouteProfileAttributes, handler.SpendAttributes)
		protected.PUT(constants.RouteProfileSkills, handler.EquipSkills)

		protected.GET(constants.RouteGoals, handler.ListGoals)
		protected.POST(constants.RouteGoals, handler.CreateGoal)
		protected.POST(constants.RouteGoalComplete, handler.CompleteGoal)

		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleTurn, handler.ExecuteTurn)
		protected.POST(constants.RouteBattleRewards, handler.ClaimRewards)
	}

	return router
}
