// Package config defines the archive plan: every path, rule and manifest
// check the archiver uses, with built-in defaults for the Family Logbook
// Android project and helpers to load, validate and save the plan as YAML.
package config
