package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists all environment variables that must be set before
// the service starts. The four role ids and the webhook are checked per
// operation instead (their absence is fatal only for role-mutating calls).
var RequiredEnvVars = []string{
	"API_KEY",
	EnvDiscordToken,
	EnvDiscordServerID,
}

// ValidateEnv checks that all required environment variables are set
func ValidateEnv() error {
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like incomplete role configuration)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	roleVars := []string{
		EnvDiscordDevRoleID,
		EnvDiscordModRoleID,
		EnvDiscordOfficeHoursRoleID,
		EnvDiscordAnnouncementsRoleID,
		EnvDiscordWebhook,
	}
	for _, envVar := range roleVars {
		if os.Getenv(envVar) == "" {
			warnings = append(warnings, fmt.Sprintf("%s is not set - role operations will fail until it is configured", envVar))
		}
	}

	if os.Getenv(EnvDiscordChannelID) == "" {
		warnings = append(warnings, EnvDiscordChannelID+" is not set")
	}

	return warnings, nil
}
