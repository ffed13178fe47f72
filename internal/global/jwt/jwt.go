package jwt

import (
	"errors"
	"time"

	"campus-events/config"
	"campus-events/internal/model"

	jwtlib "github.com/golang-jwt/jwt"
)

// Payload token 中携带的身份信息；学生 token 使用 StudentID，管理员 token 使用 AdminID
type Payload struct {
	Role      model.Role `json:"role"`
	AdminID   uint       `json:"admin_id,omitempty"`
	StudentID uint       `json:"student_id,omitempty"`
	CollegeID uint       `json:"college_id,omitempty"`
}

type Claims struct {
	Payload
	jwtlib.StandardClaims
}

func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwtlib.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(cfg.AccessExpire) * time.Second).Unix(),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// HS256 + []byte 密钥不会失败
		panic(err)
	}
	return token
}

// ParseToken 校验签名与有效期
func ParseToken(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
