// Package platform names the execution platform a backend runs on (e.g.
// "cpu"). It exists as its own package, rather than a field on op.Backend,
// so a Backend implementation and the platform identifier it reports can be
// imported independently of each other.
package platform

// Platform is an interface for different backend platforms.
type Platform interface {
	Name() string
}
