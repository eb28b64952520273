package handler

import (
	"net/http"
	"time"

	"optiwave/backend/common"
	"optiwave/backend/model"
	"optiwave/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RegisterRequestPayload defines the structure of a registration request.
type RegisterRequestPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=50"`
}

// LoginRequestPayload defines the structure of a login request.
type LoginRequestPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPair struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func issueTokens(c *gin.Context, user *model.User) {
	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespErrorStr(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespErrorStr(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("email", user.Email)
	if err := session.Save(); err != nil {
		common.SysError("failed to save session: " + err.Error())
	}

	common.RespSuccess(c, tokenPair{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func Register(c *gin.Context) {
	var requestPayload RegisterRequestPayload
	if err := c.ShouldBindJSON(&requestPayload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := common.Validate.Struct(&requestPayload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}
	if model.IsEmailAlreadyTaken(requestPayload.Email) {
		common.RespErrorStr(c, http.StatusBadRequest, "email is already registered")
		return
	}

	user := model.User{
		Email:       requestPayload.Email,
		Password:    requestPayload.Password,
		DisplayName: requestPayload.Name,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	if err := user.Insert(); err != nil {
		common.SysError("failed to create user: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	issueTokens(c, &user)
}

func Login(c *gin.Context) {
	var requestPayload LoginRequestPayload
	if err := c.ShouldBindJSON(&requestPayload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	user := model.User{
		Email:    requestPayload.Email,
		Password: requestPayload.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		return
	}

	issueTokens(c, &user)
}

func Logout(c *gin.Context) {
	// Revoke the current access token until it would have expired anyway.
	if common.RedisEnabled {
		token := c.GetString("token")
		if token != "" {
			if err := common.RedisSet("jwt:blacklist:"+token, "1", 7*24*time.Hour); err != nil {
				common.SysError("failed to blacklist token: " + err.Error())
			}
		}
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.SysError("failed to clear session: " + err.Error())
	}
	common.RespSuccessStr(c, "logged out")
}

type refreshRequestPayload struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func RefreshToken(c *gin.Context) {
	var requestPayload refreshRequestPayload
	if err := c.ShouldBindJSON(&requestPayload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	accessToken, err := service.RefreshToken(requestPayload.RefreshToken)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		return
	}
	common.RespSuccess(c, gin.H{"access_token": accessToken})
}

func GetSelf(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		common.RespErrorStr(c, http.StatusUnauthorized, "user_id not found in context")
		return
	}
	id, ok := userID.(int64)
	if !ok {
		common.RespErrorStr(c, http.StatusInternalServerError, "invalid user_id type")
		return
	}
	user, err := model.GetUserById(id)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	common.RespSuccess(c, user)
}
