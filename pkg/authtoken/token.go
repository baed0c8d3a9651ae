package authtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidToken токен повреждён, подписан другим ключом или использует другой алгоритм
	ErrInvalidToken = errors.New("authtoken: invalid token")

	// ErrExpiredToken срок действия токена истёк
	ErrExpiredToken = errors.New("authtoken: token expired")
)

const algHS256 = "HS256"

// Claims полезная нагрузка токена администратора
type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
}

// ExpiresAt время истечения токена
func (c *Claims) ExpiresAt() time.Time {
	return time.Unix(c.Exp, 0)
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// SignHS256 подписывает claims ключом secret
func SignHS256(claims Claims, secret string) (string, error) {
	headerJSON, err := json.Marshal(header{Alg: algHS256, Typ: "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	unsigned := base64.RawURLEncoding.EncodeToString(headerJSON) + "." +
		base64.RawURLEncoding.EncodeToString(payloadJSON)

	return unsigned + "." + hmacSHA256(unsigned, secret), nil
}

// ParseAndVerifyHS256 проверяет подпись и срок действия токена на момент now
func ParseAndVerifyHS256(token, secret string, now time.Time) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	unsigned := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(hmacSHA256(unsigned, secret))) {
		return nil, ErrInvalidToken
	}

	rawHeader, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(rawHeader, &h); err != nil || h.Alg != algHS256 {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	// токен без exp бессрочный, такие не принимаем
	if claims.Exp <= 0 {
		return nil, ErrInvalidToken
	}
	if now.Unix() > claims.Exp {
		return nil, ErrExpiredToken
	}

	return &claims, nil
}

func hmacSHA256(data, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
