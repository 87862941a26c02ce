package constants

// Centralized constants for env keys, headers, cookies and OAuth.
const (
	// Environment variable keys
	EnvPort                = "PORT"
	EnvDatabasePath        = "DATABASE_PATH"
	EnvGameConfigPath      = "GAME_CONFIG_PATH"
	EnvSessionSecret       = "SESSION_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvAllowedOrigins      = "ALLOWED_ORIGINS"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogPretty           = "LOG_PRETTY"
	EnvOTLPEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "mf_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteAuthRegister       = "/auth/register"
	RouteAuthLogin          = "/auth/login"
	RouteAuthLogout         = "/auth/logout"
	RouteAuthGoogleCallBack = "/auth/google/callback"
	RouteProfile            = "/profile"
	RouteProfileAttributes  = "/profile/attributes"
	RouteProfileSkills      = "/profile/skills"
	RouteHouses             = "/houses"
	RouteInterests          = "/interests"
	RouteSkills             = "/skills"
	RouteGoals              = "/goals"
	RouteGoalComplete       = "/goals/:goalID/complete"
	RouteBattles            = "/battles"
	RouteBattleByCode       = "/battles/:code"
	RouteBattleTurn         = "/battles/:code/turn"
	RouteBattleRewards      = "/battles/:code/rewards"
	RouteVersion            = "/version"
	RouteHealthz            = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrEmailAlreadyRegistered = "Email is already registered"
	ErrInvalidCredentials     = "Invalid email or password"
	ErrFailedCreateUser       = "Failed to create user"
	ErrFailedCreateSession    = "Failed to create session"
	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrNoEmailInGoogleProfile = "No email in Google profile"

	ErrFailedFetchProfile   = "Failed to fetch profile"
	ErrFailedUpdateProfile  = "Failed to update profile"
	ErrNotEnoughPoints      = "Not enough attribute points"
	ErrUnknownAttribute     = "Unknown attribute"
	ErrFailedFetchHouses    = "Failed to fetch houses"
	ErrFailedFetchInterests = "Failed to fetch interests"
	ErrFailedFetchSkills    = "Failed to fetch skills"
	ErrTooManySkills        = "Too many equipped skills"
	ErrUnknownSkill         = "Unknown skill"

	ErrFailedCreateGoal   = "Failed to create goal"
	ErrFailedFetchGoals   = "Failed to fetch goals"
	ErrInvalidGoalID      = "Invalid goal ID"
	ErrGoalNotFound       = "Goal not found"
	ErrGoalAlreadyDone    = "Goal already completed"
	ErrFailedCompleteGoal = "Failed to complete goal"

	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedFetchBattle    = "Failed to fetch battle"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleAlreadyOver    = "Battle already finished"
	ErrBattleStillRunning   = "Battle is not finished yet"
	ErrNotBattleParticipant = "Not a participant of this battle"
	ErrTurnAlreadyResolved  = "Turn was already resolved"
	ErrFailedResolveTurn    = "Failed to resolve turn"
	ErrSkillNotEquipped     = "Skill is not equipped"
	ErrRewardAlreadyClaimed = "Rewards already claimed"
	ErrNotBattleWinner      = "Only the winner can claim rewards"
	ErrFailedClaimRewards   = "Failed to claim rewards"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldUserID     = "user_id"
	LogFieldEmail      = "email"
	LogFieldHouse      = "house"
	LogFieldGoalID     = "goal_id"
	LogFieldBattleCode = "battle_code"
	LogFieldBattleID   = "battle_id"
	LogFieldTurn       = "turn"
	LogFieldDifficulty = "difficulty"
	LogFieldWinner     = "winner"
	LogFieldLevel      = "level"
	LogFieldAddr       = "addr"
	LogFieldRequestID  = "request_id"
	LogFieldMethod     = "method"
	LogFieldPath       = "path"
	LogFieldStatus     = "status"
	LogFieldDuration   = "duration_ms"
)
