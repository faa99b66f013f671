package config

// Defaults matching the original lab's fixed values.
const (
	DefaultConfigFile = "akslab.yaml"

	DefaultLocation      = "eastus2"
	DefaultStorageSKU    = "Standard_LRS"
	DefaultContainerName = "data"
	DefaultRegistrySKU   = "Basic"

	DefaultNodeCount = 2
	DefaultVMSize    = "Standard_DS2_v2"

	DefaultIdentityName     = "workload-identity"
	DefaultRoleName         = "Storage Blob Data Contributor"
	DefaultNamespace        = "default"
	DefaultServiceAccount   = "workload-identity-sa"
	DefaultImageTag         = "v1"
	DefaultSampleAppName    = "sample-app"
	DefaultSampleRepository = "sample-app"
)

// Workload identity wiring shared with the cluster-side webhook.
const (
	// FederationAudience is the audience on every federated credential.
	// The value is fixed for AAD token exchange.
	FederationAudience = "api://AzureADTokenExchange"

	// UseWorkloadIdentityLabel marks pods and service accounts for the
	// workload-identity webhook.
	UseWorkloadIdentityLabel = "azure.workload.identity/use"

	// ClientIDAnnotation carries the cloud identity's client ID on the
	// service account.
	ClientIDAnnotation = "azure.workload.identity/client-id"

	// TenantIDAnnotation carries the tenant ID on the service account.
	TenantIDAnnotation = "azure.workload.identity/tenant-id"
)

// Environment-variable overrides kept compatible with the lab scripts.
const (
	EnvCreateRegistry = "AKSLAB_CREATE_ACR"
	EnvAttachRegistry = "AKSLAB_ATTACH_ACR"
	EnvImageTag       = "AKSLAB_IMAGE_TAG"
	EnvImageOverride  = "AKSLAB_IMAGE"
	EnvStateFile      = "AKSLAB_STATE_FILE"
)
