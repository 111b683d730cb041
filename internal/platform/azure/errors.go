package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// isResponseError checks if the error is an ARM response error with one of
// the given service error codes.
func isResponseError(err error, codes ...string) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.ErrorCode == code {
				return true
			}
		}
	}
	return false
}

// hasStatusCode checks if the error carries one of the given HTTP statuses.
func hasStatusCode(err error, statuses ...int) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, s := range statuses {
			if respErr.StatusCode == s {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasStatusCode(err, http.StatusNotFound) ||
		isResponseError(err,
			"ResourceGroupNotFound",
			"ResourceNotFound",
			"NotFound",
		)
}

// IsConflict checks if an error indicates a conflict with existing state.
func IsConflict(err error) bool {
	return hasStatusCode(err, http.StatusConflict) ||
		isResponseError(err, "Conflict")
}

// IsRoleAssignmentExists checks if an error indicates the role assignment
// already exists. Re-creating an identical assignment is not a failure.
func IsRoleAssignmentExists(err error) bool {
	return isResponseError(err, "RoleAssignmentExists") || IsConflict(err)
}

// IsPrincipalNotFound checks if an error indicates the principal is not yet
// visible to the authorization service. Newly created managed identities
// replicate with a delay; these errors are retryable.
func IsPrincipalNotFound(err error) bool {
	return isResponseError(err, "PrincipalNotFound")
}

// IsInvalidParameter checks if an error indicates invalid request
// parameters. These errors are fatal and must not be retried.
func IsInvalidParameter(err error) bool {
	return hasStatusCode(err, http.StatusBadRequest) ||
		isResponseError(err,
			"InvalidParameter",
			"InvalidResourceName",
			"LocationNotAvailableForResourceType",
		)
}
