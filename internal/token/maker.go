package token

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

type Maker interface {
	CreateToken(userID uint, duration time.Duration) (string, *Payload, error)
	VertifyToken(token string) (*Payload, error)
}
