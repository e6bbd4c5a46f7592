package instance

import "github.com/angelmondragon/storefront/pkg/env"

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	return env.First("local", "STOREFRONT_INSTANCE_ID", "DYNO")
}
