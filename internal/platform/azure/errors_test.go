package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
)

func respErr(status int, code string) error {
	return &azcore.ResponseError{StatusCode: status, ErrorCode: code}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(respErr(http.StatusNotFound, "ResourceNotFound")))
	assert.False(t, IsNotFound(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, IsNotFound(errors.New("dial tcp: timeout")))
	assert.False(t, IsNotFound(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, IsConflict(respErr(http.StatusNotFound, "ResourceNotFound")))
	assert.False(t, IsConflict(nil))
}

func TestIsRoleAssignmentExists(t *testing.T) {
	assert.True(t, IsRoleAssignmentExists(respErr(http.StatusConflict, "RoleAssignmentExists")))
	assert.False(t, IsRoleAssignmentExists(respErr(http.StatusConflict, "Conflict")))
	assert.False(t, IsRoleAssignmentExists(nil))
}

func TestIsPrincipalNotFound(t *testing.T) {
	assert.True(t, IsPrincipalNotFound(respErr(http.StatusBadRequest, "PrincipalNotFound")))
	assert.False(t, IsPrincipalNotFound(respErr(http.StatusBadRequest, "InvalidPrincipalId")))
	assert.False(t, IsPrincipalNotFound(nil))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"principal not yet replicated", respErr(http.StatusBadRequest, "PrincipalNotFound"), true},
		{"throttled", respErr(http.StatusTooManyRequests, "TooManyRequests"), true},
		{"server error", respErr(http.StatusInternalServerError, "InternalServerError"), true},
		{"bad gateway", respErr(http.StatusBadGateway, "BadGateway"), true},
		{"not found", respErr(http.StatusNotFound, "ResourceNotFound"), false},
		{"forbidden", respErr(http.StatusForbidden, "AuthorizationFailed"), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("assigning role: %w", respErr(http.StatusConflict, "RoleAssignmentExists"))
	assert.True(t, IsRoleAssignmentExists(wrapped))
	assert.True(t, IsConflict(wrapped))
}
