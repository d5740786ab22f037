package utils

import (
	"time"

	common_models "go-dutyleave/internal/common/models"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("secret")

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

const UserClaimsKey = "user_claims"

// UserClaims carries the authenticated identity. Stage and Department are
// only set for faculty tokens; RollNo and Division only for student tokens.
type UserClaims struct {
	UserID     string                  `json:"user_id"`
	Name       string                  `json:"name"`
	Email      string                  `json:"email"`
	Role       common_models.ActorRole `json:"role"`
	Stage      common_models.StageRole `json:"stage,omitempty"`
	Department string                  `json:"department,omitempty"`
	RollNo     string                  `json:"roll_no,omitempty"`
	Division   string                  `json:"division,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts token claims into the typed descriptor passed into core
// operations.
func (c *UserClaims) Actor() common_models.Actor {
	return common_models.Actor{
		ID:         c.UserID,
		Name:       c.Name,
		Email:      c.Email,
		Role:       c.Role,
		Stage:      c.Stage,
		Department: c.Department,
	}
}

func GenerateToken(claims UserClaims) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenSignatureInvalid
}
