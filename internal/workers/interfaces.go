// Package workers provides the background workers of the vault server and a
// small aggregate for starting them together.
package workers

// Worker is implemented by any background worker. Run starts the worker's
// execution; implementations either block for the duration of their work or
// spawn goroutines internally.
type Worker interface {
	Run()
}
