package embeddings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/common/auth"
	"github.com/oracle/oci-go-sdk/v65/generativeaiinference"
)

// AuthType selects how the OCI client authenticates
type AuthType string

// Supported authentication types
const (
	AuthTypeAPIKey            AuthType = "API_KEY"
	AuthTypeSecurityToken     AuthType = "SECURITY_TOKEN"
	AuthTypeInstancePrincipal AuthType = "INSTANCE_PRINCIPAL"
	AuthTypeResourcePrincipal AuthType = "RESOURCE_PRINCIPAL"
)

const defaultAuthProfile = "DEFAULT"

// ParseAuthType converts a config string into an AuthType.
// Matching is case-insensitive; the empty string maps to API_KEY.
func ParseAuthType(s string) (AuthType, error) {
	switch AuthType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", AuthTypeAPIKey:
		return AuthTypeAPIKey, nil
	case AuthTypeSecurityToken:
		return AuthTypeSecurityToken, nil
	case AuthTypeInstancePrincipal:
		return AuthTypeInstancePrincipal, nil
	case AuthTypeResourcePrincipal:
		return AuthTypeResourcePrincipal, nil
	default:
		return "", fmt.Errorf("unsupported auth type %q", s)
	}
}

// configFilePath returns the OCI config file location, expanding a leading "~".
func configFilePath(location string) string {
	if location == "" {
		location = filepath.Join("~", ".oci", "config")
	}
	if strings.HasPrefix(location, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			location = filepath.Join(home, strings.TrimPrefix(location, "~"))
		}
	}
	return location
}

// configProvider builds the credential source for the configured auth type
func configProvider(cfg OCIConfig) (common.ConfigurationProvider, error) {
	switch cfg.AuthType {
	case AuthTypeAPIKey:
		return common.CustomProfileConfigProvider(configFilePath(cfg.AuthFileLocation), cfg.AuthProfile), nil
	case AuthTypeSecurityToken:
		provider, err := common.ConfigurationProviderForSessionTokenWithProfile(configFilePath(cfg.AuthFileLocation), cfg.AuthProfile, "")
		if err != nil {
			return nil, fmt.Errorf("load session token config: %w", err)
		}
		return provider, nil
	case AuthTypeInstancePrincipal:
		provider, err := auth.InstancePrincipalConfigurationProvider()
		if err != nil {
			return nil, fmt.Errorf("instance principal auth: %w", err)
		}
		return provider, nil
	case AuthTypeResourcePrincipal:
		provider, err := auth.ResourcePrincipalConfigurationProvider()
		if err != nil {
			return nil, fmt.Errorf("resource principal auth: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported auth type %q", cfg.AuthType)
	}
}

// newInferenceClient creates the OCI Generative AI inference client for cfg
func newInferenceClient(cfg OCIConfig) (*generativeaiinference.GenerativeAiInferenceClient, error) {
	provider, err := configProvider(cfg)
	if err != nil {
		return nil, err
	}

	client, err := generativeaiinference.NewGenerativeAiInferenceClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("create inference client: %w", err)
	}
	if cfg.ServiceEndpoint != "" {
		client.Host = cfg.ServiceEndpoint
	}

	return &client, nil
}
