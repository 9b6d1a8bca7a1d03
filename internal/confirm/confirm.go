package confirm

// Confirmer is the confirmation port for destructive or discarding actions.
// The engine asks, the caller decides how (or whether) to prompt; tests and
// non-interactive callers inject a fixed policy.
type Confirmer interface {
	Confirm(message string) bool
}

// Func adapts a plain function to the Confirmer interface.
type Func func(message string) bool

func (f Func) Confirm(message string) bool { return f(message) }

// Always approves every confirmation request.
var Always Confirmer = Func(func(string) bool { return true })

// Never declines every confirmation request.
var Never Confirmer = Func(func(string) bool { return false })

// FromFlag builds a Confirmer from a pre-answered flag, e.g. a "confirm=true"
// request parameter sent after the client showed its own dialog.
func FromFlag(confirmed bool) Confirmer {
	return Func(func(string) bool { return confirmed })
}
