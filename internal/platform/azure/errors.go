package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Error codes the lab has to recognize on the role-assignment path.
const (
	codeRoleAssignmentExists = "RoleAssignmentExists"
	codePrincipalNotFound    = "PrincipalNotFound"
)

// IsNotFound checks if an error is a 404 from the Azure control plane.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error is a 409 conflict.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsRoleAssignmentExists checks for the conflict returned when re-creating
// an existing role assignment. Idempotent callers treat this as success.
func IsRoleAssignmentExists(err error) bool {
	return hasErrorCode(err, codeRoleAssignmentExists)
}

// IsPrincipalNotFound checks for the transient error returned when a role
// assignment references an identity that has not finished replicating
// through the directory. This is the one error class worth retrying on a
// fixed interval.
func IsPrincipalNotFound(err error) bool {
	return hasErrorCode(err, codePrincipalNotFound)
}

// IsTransient reports whether the error is worth retrying: directory
// propagation, throttling, or a server-side 5xx.
func IsTransient(err error) bool {
	if IsPrincipalNotFound(err) {
		return true
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusTooManyRequests:
			return true
		case respErr.StatusCode >= 500:
			return true
		}
	}
	return false
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}
	return false
}

func hasErrorCode(err error, code string) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ErrorCode == code
	}
	return false
}
