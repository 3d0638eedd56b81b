package transport

// Driver is the opaque topology-test-driver handle the transport wraps:
// inject one record, read emitted records one at a time per physical
// topic, close. Implementations may assign Partition/Offset on the
// injected record in place.
type Driver interface {
	Inject(rec *InputRecord) error
	// ReadNext pops the next emitted record for the physical topic, or
	// nil when the topic is drained.
	ReadNext(topic string) *OutputRecord
	Close() error
}
