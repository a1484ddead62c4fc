package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// WatcherInterface observes a directory and emits each new file path on
// Events. Stop closes the channel once the event loop has drained.
type WatcherInterface interface {
	Start() error
	Stop()
	Events() <-chan string
}
