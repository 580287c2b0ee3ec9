// Package identity provides a reference in-memory implementation of
// [sessionauth.IdentityProvider] for tests, examples, and small
// deployments. Production systems back the interface with their own
// user storage.
package identity
