package tracer

type ChangeType uint8

const (
	// Replace the scene buffers; the payload is a *scene.Buffers.
	SetScene ChangeType = iota
)

// A Tracer consumes packed scene buffers. Changes are queued with
// AppendChange and take effect when ApplyPendingChanges is invoked.
type Tracer interface {
	// Get tracer id.
	Id() string

	// Append a change to the tracer's update buffer.
	AppendChange(ChangeType, interface{})

	// Apply all pending changes from the update buffer.
	ApplyPendingChanges() error
}
