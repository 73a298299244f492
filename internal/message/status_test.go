package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "OK", StatusText(StatusOK))
	assert.Equal(t, "Payment Required", StatusText(StatusPaymentRequired))
	assert.Equal(t, "Use Proxy", StatusText(StatusUseProxy))
	assert.Equal(t, "Not Modified", StatusText(StatusNotModified))
	assert.Equal(t, "HTTP Version Not Supported", StatusText(StatusHTTPVersionNotSupported))

	assert.Equal(t, "", StatusText(999))
	assert.Equal(t, "", StatusText(306))
}
