package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
)

func respErr(code string, status int) error {
	return &azcore.ResponseError{ErrorCode: code, StatusCode: status}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(respErr("ResourceGroupNotFound", http.StatusNotFound)))
	assert.True(t, IsNotFound(respErr("", http.StatusNotFound)))
	assert.True(t, IsNotFound(respErr("ResourceNotFound", http.StatusBadRequest)))
	assert.False(t, IsNotFound(respErr("Conflict", http.StatusConflict)))
	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(respErr("Conflict", http.StatusConflict)))
	assert.True(t, IsConflict(respErr("", http.StatusConflict)))
	assert.False(t, IsConflict(respErr("", http.StatusNotFound)))
}

func TestIsRoleAssignmentExists(t *testing.T) {
	assert.True(t, IsRoleAssignmentExists(respErr("RoleAssignmentExists", http.StatusConflict)))
	assert.True(t, IsRoleAssignmentExists(respErr("Conflict", http.StatusConflict)))
	assert.False(t, IsRoleAssignmentExists(respErr("PrincipalNotFound", http.StatusBadRequest)))
}

func TestIsPrincipalNotFound(t *testing.T) {
	assert.True(t, IsPrincipalNotFound(respErr("PrincipalNotFound", http.StatusBadRequest)))
	assert.False(t, IsPrincipalNotFound(respErr("InvalidParameter", http.StatusBadRequest)))
}

func TestIsInvalidParameter(t *testing.T) {
	assert.True(t, IsInvalidParameter(respErr("InvalidParameter", http.StatusBadRequest)))
	assert.True(t, IsInvalidParameter(respErr("", http.StatusBadRequest)))
	assert.False(t, IsInvalidParameter(respErr("", http.StatusConflict)))
}

func TestErrorClassification_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to create role assignment: %w",
		respErr("PrincipalNotFound", http.StatusBadRequest))
	assert.True(t, IsPrincipalNotFound(wrapped))
}
