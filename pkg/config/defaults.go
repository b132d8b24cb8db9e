package config

// AeroAPI client defaults.
const (
	DefaultBaseURL          = "https://aeroapi.flightaware.com/aeroapi/"
	DefaultMaxPages         = 5
	DefaultTimeout          = "30s"
	DefaultPacing           = "30s"
	DefaultRetryMaxAttempts = 5
	DefaultRetryBaseBackoff = "1m"
	DefaultRetryMaxBackoff  = "10m"
	DefaultRetryFactor      = 2.0
)

// Storage defaults.
const (
	DefaultDataDir    = "data"
	DefaultArchiveRaw = true
)

// Report defaults.
const (
	DefaultOutputDir       = "reports"
	DefaultTopRoutes       = 5
	DefaultTopDestinations = 10
)

// Narrative model defaults.
const (
	DefaultLLMModel = "gpt-4o"
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Observability defaults.
const (
	DefaultOTLPInsecure = true
	DefaultSampleRatio  = 1.0
)
