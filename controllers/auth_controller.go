package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scribehq/scribe/config"
	"github.com/scribehq/scribe/middleware"
	"github.com/scribehq/scribe/store"
	"github.com/scribehq/scribe/utils"
)

const adminGroupName = "Admin"

// AuthController handles registration, login, and identity endpoints.
type AuthController struct {
	identity store.Identity
}

// NewAuthController creates an AuthController over the identity store.
func NewAuthController(identity store.Identity) *AuthController {
	return &AuthController{identity: identity}
}

// Register creates a new user. Duplicate usernames are rejected by the
// store's uniqueness constraint, not by a pre-check here.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := a.identity.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	utils.Sugar.Infow("user registered", "user_id", user.ID, "username", user.Username)
	utils.Created(ctx, gin.H{"user": user})
}

// Login authenticates a username/password pair and issues a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	user, err := a.identity.Authenticate(req.Username, req.Password)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, 72*time.Hour)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
		return
	}
	claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}
	if claims.ExpiresAt != nil {
		utils.BlacklistToken(claims.ID, claims.ExpiresAt.Time)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// SetupUser fetches or creates the named user, then makes sure the Admin
// group exists and the bootstrap admin belongs to it. Always 200 whether
// or not anything was created.
func (a *AuthController) SetupUser(ctx *gin.Context) {
	cfg := config.Get()

	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{
		Username: cfg.SetupUsername,
		Password: cfg.SetupPassword,
	}
	// Body is optional; defaults come from config.
	_ = ctx.ShouldBindJSON(&req)

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		utils.Error(ctx, http.StatusBadRequest, 40003, "username and password are required")
		return
	}

	user, created, err := a.identity.GetOrCreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	group, err := a.identity.GetOrCreateGroup(adminGroupName)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	admin, adminCreated, err := a.identity.GetOrCreateUser(cfg.AdminUsername, "", cfg.AdminPassword)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}
	if !admin.InGroup(adminGroupName) {
		if err := a.identity.AddToGroup(admin, group); err != nil {
			errorFromStore(ctx, err)
			return
		}
	}

	utils.Sugar.Infow("setup-user completed",
		"username", user.Username, "created", created,
		"admin", admin.Username, "admin_created", adminCreated)

	utils.Success(ctx, gin.H{
		"user":    user,
		"created": created,
		"admin":   gin.H{"username": admin.Username, "group": group.Name},
	})
}

// ListUsers returns all users in creation order. Password hashes are
// never serialized.
func (a *AuthController) ListUsers(ctx *gin.Context) {
	users, err := a.identity.ListUsers()
	if err != nil {
		errorFromStore(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": users, "total": len(users)})
}

// Me returns the authenticated user's record.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := a.identity.GetUser(userID)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// Protected is an authenticated-only probe.
func (a *AuthController) Protected(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"message": "Authenticated!"})
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
