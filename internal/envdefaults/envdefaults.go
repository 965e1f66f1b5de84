// Package envdefaults resolves the target project and zone for an
// invocation. Flags take precedence, then the env defaults file
// (prod.env by default), then GCP_PROJECT/GCP_ZONE already present in
// the environment.
package envdefaults

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingParameter indicates project or zone could not be resolved
// from flags, the env defaults file, or the environment. No API call
// should be attempted.
var ErrMissingParameter = errors.New("missing required parameter")

// DefaultEnvFile is the default env defaults file, relative to the
// working directory.
const DefaultEnvFile = "prod.env"

// envPrefix yields GCP_PROJECT and GCP_ZONE via envconfig.
const envPrefix = "gcp"

type environment struct {
	Project string `envconfig:"PROJECT"`
	Zone    string `envconfig:"ZONE"`
}

// Target identifies where an instance operation is directed.
type Target struct {
	Project string
	Zone    string
}

// Resolve returns the project/zone for this invocation. project and
// zone are the flag values (empty when the flag was not given);
// envFile is the env defaults file path, loaded into the process
// environment when it exists. Missing values fall back to
// GCP_PROJECT/GCP_ZONE.
func Resolve(project, zone, envFile string) (Target, error) {
	if project != "" && zone != "" {
		return Target{Project: project, Zone: zone}, nil
	}

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		// godotenv does not overwrite variables already set in the
		// environment, so explicit env vars still win over the file.
		if err := godotenv.Load(envFile); err != nil {
			return Target{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var env environment
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Target{}, fmt.Errorf("failed to process environment: %w", err)
	}

	if project == "" {
		project = env.Project
	}
	if zone == "" {
		zone = env.Zone
	}

	if project == "" {
		return Target{}, fmt.Errorf("%w: project (set --project, GCP_PROJECT, or %s)", ErrMissingParameter, envFile)
	}
	if zone == "" {
		return Target{}, fmt.Errorf("%w: zone (set --zone, GCP_ZONE, or %s)", ErrMissingParameter, envFile)
	}

	return Target{Project: project, Zone: zone}, nil
}
