package inject

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlantools/dot11"
)

func TestInterfaceIndexUnknown(t *testing.T) {
	_, err := InterfaceIndex("does-not-exist0")
	require.Error(t, err)
	assert.Equal(t, dot11.ErrNoSuchInterface, errors.Cause(err))
}

func TestInterfaceIndexLoopback(t *testing.T) {
	idx, err := InterfaceIndex("lo")
	if err != nil {
		t.Skip("no loopback interface on this host")
	}
	assert.Greater(t, idx, 0)
}
