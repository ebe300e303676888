// Package ticket issues and validates room tickets. The join endpoint
// hands one out after validating the name and room code; the websocket
// handshake trades it back for a live connection.
package ticket

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries what the websocket handshake needs to know.
type Claims struct {
	Room string `json:"room"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Config holds ticket signing configuration.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue creates a signed ticket admitting name into room.
func Issue(cfg *Config, room, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Room: room,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cfg.Secret)
}

// Validate parses and validates a ticket string.
func Validate(cfg *Config, ticketString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(ticketString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse ticket: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid ticket claims")
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, fmt.Errorf("invalid issuer")
	}
	if claims.Room == "" || claims.Name == "" {
		return nil, fmt.Errorf("ticket missing room or name")
	}

	return claims, nil
}
