package library

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestGenerationCondition(t *testing.T) {
	c, err := generationCondition("")
	assert.NoError(t, err)
	assert.True(t, c.DoesNotExist)

	c, err = generationCondition("1714550400123456")
	assert.NoError(t, err)
	assert.Equal(t, int64(1714550400123456), c.GenerationMatch)

	_, err = generationCondition("sha1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMapGCSWriteError(t *testing.T) {
	assert.NoError(t, mapGCSWriteError(nil))
	assert.ErrorIs(t, mapGCSWriteError(&googleapi.Error{Code: http.StatusPreconditionFailed}), ErrConflict)

	err := mapGCSWriteError(&googleapi.Error{Code: http.StatusForbidden})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestClientOptions(t *testing.T) {
	assert.Len(t, clientOptions(GCSConfig{}), 1)
	assert.Len(t, clientOptions(GCSConfig{Credentials: `{"type":"service_account"}`}), 2)
	assert.Len(t, clientOptions(GCSConfig{Credentials: "/etc/sa.json"}), 2)
	assert.Len(t, clientOptions(GCSConfig{Endpoint: "http://localhost:4443/storage/v1/"}), 2)
}
