package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCookie 表示 Cookie 值格式错误或签名不匹配。
var ErrInvalidCookie = errors.New("invalid session cookie")

// Signer 使用 HMAC-SHA256 为会话 ID 签名，防止客户端伪造。
type Signer struct {
	key []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{key: []byte(secret)}
}

// Sign 返回 "<id>.<signature>" 形式的 Cookie 值。
func (s *Signer) Sign(id string) string {
	return id + "." + s.mac(id)
}

// Verify 校验 Cookie 值并返回其中的会话 ID。
func (s *Signer) Verify(value string) (string, error) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", ErrInvalidCookie
	}
	id, sig := value[:idx], value[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", ErrInvalidCookie
	}
	return id, nil
}

func (s *Signer) mac(id string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
