// Package config loads authorizer settings from AUTH_0_* environment
// variables and an optional YAML file, and converts them into the option
// structs of the secret, auth and observe packages.
package config
