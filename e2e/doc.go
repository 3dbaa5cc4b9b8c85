// Package e2e holds end-to-end tests that drive every analysis stage
// through the engine over the shipped resource tables.
package e2e
