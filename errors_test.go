package netcore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsUnwrap(t *testing.T) {
	cases := []struct {
		name     string
		sentinel error
	}{
		{"accept", ErrAcceptSocket},
		{"register", ErrRegisterConn},
		{"rearm", ErrRearmConn},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: %v", c.sentinel, errors.New("syscall failed"))
			assert.ErrorIs(t, wrapped, c.sentinel)
		})
	}
}
