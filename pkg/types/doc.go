// Package types defines the classification entities, configuration, and
// standard errors shared by the sampleatlas engines.
// See docs/ARCHITECTURE.md § Data Model.
package types
