package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	policy "github.com/ykaya/deptportal/internal/app/auth"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/repositories"
	"github.com/ykaya/deptportal/internal/pkg/auth"
)

// Context keys set by JWTAuth and read by the controllers
const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRole      = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	accountRepo *repositories.AccountRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, accountRepo *repositories.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		accountRepo: accountRepo,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth resolves the caller's identity when a valid token is
// present but never rejects the request. Used on public routes whose
// responses widen for authors and moderators.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// ApprovalRequired gates a route to approved accounts. Approval is read from
// the store on every request, not from the token: a rejection takes effect
// immediately even while an old access token is still live.
func (m *AuthMiddleware) ApprovalRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		account, err := m.accountRepo.FindByID(c.Request.Context(), actor.AccountID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
			errorDetail = errorDetail.WithDetails("Failed to check approval status")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}

		if account.ApprovalStatus != models.ApprovalApproved {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeNotApproved, "Account not approved")
			errorDetail = errorDetail.WithDetails("Your account is awaiting approval")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// ActionRequired gates a route to roles the policy allows for the action.
// Services re-check the same policy; this just fails fast before any body
// parsing happens.
func (m *AuthMiddleware) ActionRequired(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if !policy.CanPerform(actor.Role, action) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// ActorFromContext rebuilds the authenticated actor from the context values
// set by JWTAuth
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	accountID, exists := c.Get(ContextAccountID)
	if !exists {
		return models.Actor{}, false
	}
	id, ok := accountID.(int64)
	if !ok {
		return models.Actor{}, false
	}

	role, exists := c.Get(ContextRole)
	if !exists {
		return models.Actor{}, false
	}
	roleStr, ok := role.(string)
	if !ok {
		return models.Actor{}, false
	}

	return models.Actor{AccountID: id, Role: models.Role(roleStr)}, true
}
