package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/google/uuid"
)

// AssignRole grants roleName to principalID at scope. This performs exactly
// one attempt; the directory-propagation retry policy lives with the
// caller, which dispatches on IsTransient/IsPrincipalNotFound. Re-creating
// an assignment that already exists is success.
func (c *RealClient) AssignRole(ctx context.Context, scope, roleName, principalID string) error {
	roleDefinitionID, err := c.resolveRoleDefinition(ctx, scope, roleName)
	if err != nil {
		return err
	}

	assignmentName := uuid.NewString()
	_, err = c.roleAssignments.Create(ctx, scope, assignmentName, armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(principalID),
			RoleDefinitionID: to.Ptr(roleDefinitionID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
		},
	}, nil)
	if err != nil {
		if IsRoleAssignmentExists(err) {
			return nil
		}
		return fmt.Errorf("failed to assign role %q at %s: %w", roleName, scope, err)
	}
	return nil
}

// resolveRoleDefinition maps a role name to its definition ID at scope.
func (c *RealClient) resolveRoleDefinition(ctx context.Context, scope, roleName string) (string, error) {
	pager := c.roleDefinitions.NewListPager(scope, &armauthorization.RoleDefinitionsClientListOptions{
		Filter: to.Ptr(fmt.Sprintf("roleName eq '%s'", roleName)),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list role definitions for %q: %w", roleName, err)
		}
		for _, def := range page.Value {
			if def.ID != nil {
				return *def.ID, nil
			}
		}
	}
	return "", fmt.Errorf("role definition %q not found at scope %s", roleName, scope)
}
