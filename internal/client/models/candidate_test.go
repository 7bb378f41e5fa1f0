package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusUploading.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusError.Terminal())
}
