// Package controller exposes signup, login and session endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/service"
	"github.com/aahabhisheksingh/studyhub-api/library/auth"
	"github.com/aahabhisheksingh/studyhub-api/library/jwt"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

const (
	sessionTTL        = 7 * 24 * time.Hour
	sessionCookieName = "token"
)

var Instance *Users

// Users user controller
type Users struct {
	svc *service.Users
}

func Initialize(ctx context.Context) {
	service.Initialize(ctx, service.Config{
		OwnerEmail:     gconfig.Shared.GetString("settings.owner.email"),
		GoogleClientID: gconfig.Shared.GetString("settings.google.client_id"),
	})

	Instance = New(service.Instance)
}

// New new user controller
func New(svc *service.Users) *Users {
	return &Users{svc: svc}
}

type loginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Account     string `json:"account" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type sessionResponse struct {
	Account     string `json:"account"`
	DisplayName string `json:"displayName"`
	IsOwner     bool   `json:"isOwner"`
	Token       string `json:"token,omitempty"`
}

// Login password login
func (u *Users) Login(ctx *gin.Context) {
	req := new(loginRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "account and password are required"})
		return
	}

	usr, err := u.svc.Login(ctx.Request.Context(), req.Account, req.Password)
	if err != nil {
		status, msg := maskLoginError(err)
		ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}

	u.finishSession(ctx, usr)
}

// Signup registers an account and signs it in.
func (u *Users) Signup(ctx *gin.Context) {
	req := new(signupRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "account and password are required"})
		return
	}

	usr, err := u.svc.Signup(ctx.Request.Context(),
		req.Account, req.Password, req.DisplayName)
	if err != nil {
		status := http.StatusBadRequest
		msg := err.Error()
		if errors.Is(err, model.ErrAccountExists) {
			msg = "This email is already registered. Please log in instead."
		}
		ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}

	u.finishSession(ctx, usr)
}

// LoginGoogle Google ID-token login
func (u *Users) LoginGoogle(ctx *gin.Context) {
	req := new(googleLoginRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "idToken is required"})
		return
	}

	usr, err := u.svc.LoginWithGoogle(ctx.Request.Context(), req.IDToken)
	if err != nil {
		status, msg := maskLoginError(err)
		ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}

	u.finishSession(ctx, usr)
}

// Logout clears the session cookie.
func (u *Users) Logout(ctx *gin.Context) {
	ctx.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the current session, or 401 when not signed in.
func (u *Users) Me(ctx *gin.Context) {
	uc := new(jwt.UserClaims)
	if err := auth.Instance.GetUserClaims(ctx, uc); err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"error": "not signed in"})
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse{
		Account:     uc.Account,
		DisplayName: uc.DisplayName,
		IsOwner:     u.svc.IsOwner(uc.Account),
	})
}

// RequireOwner aborts with 401 when no session is present and 403 when
// the session account is not the configured owner.
func (u *Users) RequireOwner() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uc := new(jwt.UserClaims)
		if err := auth.Instance.GetUserClaims(ctx, uc); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "not signed in"})
			return
		}
		if !u.svc.IsOwner(uc.Account) {
			ctx.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": "owner only"})
			return
		}

		ctx.Next()
	}
}

func (u *Users) finishSession(ctx *gin.Context, usr *model.User) {
	now := gutils.Clock.GetUTCNow()
	uc := &jwt.UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   usr.GetID(),
			ID:        uuid.NewString(),
			IssuedAt:  &jwtLib.NumericDate{Time: now},
			ExpiresAt: &jwtLib.NumericDate{Time: now.Add(sessionTTL)},
		},
		Account:     usr.Account,
		DisplayName: usr.Name(),
	}

	token, err := auth.Instance.Sign(uc)
	if err != nil {
		log.Logger.Error("sign session token", zap.Error(err))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "login failed"})
		return
	}

	if err := ginMw.SetCookie(ctx, sessionCookieName, token,
		ginMw.WithCookieMaxAge(int(sessionTTL/time.Second)),
		ginMw.WithCookieHTTPOnly(true),
	); err != nil {
		log.Logger.Error("set session cookie", zap.Error(err))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "login failed"})
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse{
		Account:     usr.Account,
		DisplayName: usr.Name(),
		IsOwner:     u.svc.IsOwner(usr.Account),
		Token:       token,
	})
}
