package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/talkroom/talkroom/internal/server/store"
)

// RoomCodeLength is the length of generated room join codes.
const RoomCodeLength = 4

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewRoomCode generates an unused uppercase room code. With 26^4 codes and
// transient rooms, collisions are retried rather than prevented.
func NewRoomCode(ctx context.Context, st store.Store) (string, error) {
	for {
		code, err := randomCode(RoomCodeLength)
		if err != nil {
			return "", err
		}
		exists, err := st.RoomExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check room code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
