package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOS(t *testing.T) {
	assert.Equal(t, SupportedOS(runtime.GOOS), GetOS())
}

func TestValidateSupport(t *testing.T) {
	// Tests only run on platforms with a native backend
	assert.True(t, IsSupported())
	assert.NoError(t, ValidateSupport())
}
