package azure

import (
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/msi/armmsi"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
)

// RealClient implements Manager over the Azure SDK clients.
type RealClient struct {
	subscriptionID string
	pollFrequency  time.Duration

	groups          *armresources.ResourceGroupsClient
	accounts        *armstorage.AccountsClient
	containers      *armstorage.BlobContainersClient
	registries      *armcontainerregistry.RegistriesClient
	clusters        *armcontainerservice.ManagedClustersClient
	identities      *armmsi.UserAssignedIdentitiesClient
	federatedCreds  *armmsi.FederatedIdentityCredentialsClient
	roleDefinitions *armauthorization.RoleDefinitionsClient
	roleAssignments *armauthorization.RoleAssignmentsClient
	graph           *msgraphsdk.GraphServiceClient
}

// NewRealClient creates a Manager backed by the Azure SDK. The credential is
// shared across the ARM plane and Microsoft Graph; subscriptionID scopes all
// ARM operations.
func NewRealClient(subscriptionID string, cred azcore.TokenCredential, pollFrequency time.Duration) (*RealClient, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if pollFrequency <= 0 {
		pollFrequency = 10 * time.Second
	}

	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	accounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	containers, err := armstorage.NewBlobContainersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob containers client: %w", err)
	}
	registries, err := armcontainerregistry.NewRegistriesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registries client: %w", err)
	}
	clusters, err := armcontainerservice.NewManagedClustersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}
	identities, err := armmsi.NewUserAssignedIdentitiesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create identities client: %w", err)
	}
	federatedCreds, err := armmsi.NewFederatedIdentityCredentialsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create federated credentials client: %w", err)
	}
	roleDefinitions, err := armauthorization.NewRoleDefinitionsClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role definitions client: %w", err)
	}
	roleAssignments, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}
	graph, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{"https://graph.microsoft.com/.default"})
	if err != nil {
		return nil, fmt.Errorf("failed to create graph client: %w", err)
	}

	return &RealClient{
		subscriptionID:  subscriptionID,
		pollFrequency:   pollFrequency,
		groups:          groups,
		accounts:        accounts,
		containers:      containers,
		registries:      registries,
		clusters:        clusters,
		identities:      identities,
		federatedCreds:  federatedCreds,
		roleDefinitions: roleDefinitions,
		roleAssignments: roleAssignments,
		graph:           graph,
	}, nil
}

// SubscriptionID returns the subscription this client is scoped to.
func (c *RealClient) SubscriptionID() string {
	return c.subscriptionID
}
