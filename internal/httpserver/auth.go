package httpserver

import (
	"errors"
	"net/http"

	"flowershop/internal/domain"
	authsvc "flowershop/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Message      string      `json:"message"`
	User         domain.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
}

func registerHandler(svc *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "이메일, 비밀번호, 이름은 필수 항목입니다")
			return
		}
		u, err := svc.Signup(c.Request.Context(), authsvc.SignupInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Phone:    req.Phone,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				badRequest(c, "이미 사용 중인 이메일입니다")
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "회원가입이 완료되었습니다", "user": u})
	}
}

func loginHandler(svc *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "이메일과 비밀번호를 입력해주세요")
			return
		}
		u, access, refresh, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "이메일 또는 비밀번호가 일치하지 않습니다"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			Message:      "로그인 성공",
			User:         *u,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    svc.AccessTTLSeconds(),
		})
	}
}

func logoutHandler(svc *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" {
			if err := svc.Logout(c.Request.Context(), token); err != nil {
				respondError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "로그아웃 되었습니다"})
	}
}
