package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPortAvailable(t *testing.T) {
	// port 0 lets the OS pick a free one
	assert.True(t, IsPortAvailable("127.0.0.1", 0))
}

func TestIsPortAvailable_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	assert.False(t, IsPortAvailable("127.0.0.1", addr.Port))
}

func TestIsPortAvailable_InvalidPorts(t *testing.T) {
	assert.False(t, IsPortAvailable("127.0.0.1", -1))
	assert.False(t, IsPortAvailable("127.0.0.1", 65536))
}
