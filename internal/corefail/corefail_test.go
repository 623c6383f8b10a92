package corefail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFunc_CallsUnderlyingFunction(t *testing.T) {
	var got error
	h := HandlerFunc(func(err error) { got = err })

	h.OnFatal(ErrPoolExhausted)

	assert.Equal(t, ErrPoolExhausted, got)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrPoolExhausted,
		ErrQueueFull,
		ErrAdmissionRejected,
		ErrMailboxFull,
		ErrInvalidMessage,
		ErrTimeoutElapsed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotEqual(t, a, b)
		}
	}
}
