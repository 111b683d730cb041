package handlers

import (
	"context"
	"fmt"
	"os"
)

// starterConfig is the scaffold written by 'aksdeck init'. It deploys a
// minimal but production-shaped cluster; most fields have sensible defaults
// and can be deleted.
const starterConfig = `# aksdeck deployment configuration.
# Names must be globally unique where Azure requires it (registry name).

# Azure subscription to deploy into.
# Defaults to the AZURE_SUBSCRIPTION_ID environment variable when omitted.
# subscription_id: 00000000-0000-0000-0000-000000000000

group:
  name: my-deployment-rg
  location: eastus

cluster:
  name: my-cluster
  # kubernetes_version: "1.30.3"   # omit to track the platform default
  node_pool:
    count: 3
    vm_size: Standard_DS2_v2
    # zones: ["1", "2", "3"]

registry:
  # Alphanumeric, 5-50 characters, globally unique.
  name: mydeploymentacr
  # sku: Basic                     # Basic, Standard, or Premium

# state:
#   backend: s3                    # share state between operators
#   s3:
#     endpoint: https://s3.example.com
#     region: us-east-1
#     bucket: aksdeck-state
#     prefix: my-deployment
#     access_key: ...
#     secret_key: ...
`

// Init writes a commented starter configuration file.
func Init(_ context.Context, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outputPath)
		}
	}

	if err := writeFile(outputPath, []byte(starterConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Wrote %s\n", outputPath)
	fmt.Printf("Edit the names and location, then run 'aksdeck apply'.\n")
	return nil
}
