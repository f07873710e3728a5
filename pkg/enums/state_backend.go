package enums

// StateBackend selects where client stores persist their blobs.
type StateBackend string

const (
	StateBackendFile   StateBackend = "file"
	StateBackendRedis  StateBackend = "redis"
	StateBackendMemory StateBackend = "memory"
)

var stateBackends = values[StateBackend]{"state backend", []StateBackend{
	StateBackendFile, StateBackendRedis, StateBackendMemory,
}}

func (s StateBackend) String() string { return string(s) }
func (s StateBackend) IsValid() bool  { return stateBackends.has(s) }

func ParseStateBackend(value string) (StateBackend, error) { return stateBackends.parse(value) }
