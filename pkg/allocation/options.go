package allocation

const (
	DefaultDecayFactor         = 0.985
	DefaultMaxDrawAttempts     = 10000
	DefaultMaxElectiveAttempts = 1000
)

type Options struct {
	DecayFactor         float64 // Multiplier applied to the weight vector after every accepted draw
	MaxDrawAttempts     int     // Ceiling on draws for a single slot
	MaxElectiveAttempts int     // Ceiling on random times tried for a single elective hour
	ElectiveSuppression bool    // A daily-max rejection during elective placement excludes the whole day for that hour
	EnforceProhibit     bool    // Reject courses at their prohibited slot-positions
}

func DefaultOptions() Options {
	return Options{
		DecayFactor:         DefaultDecayFactor,
		MaxDrawAttempts:     DefaultMaxDrawAttempts,
		MaxElectiveAttempts: DefaultMaxElectiveAttempts,
	}
}

func (options Options) withDefaults() Options {
	if options.DecayFactor <= 0 || options.DecayFactor > 1 {
		options.DecayFactor = DefaultDecayFactor
	}
	if options.MaxDrawAttempts <= 0 {
		options.MaxDrawAttempts = DefaultMaxDrawAttempts
	}
	if options.MaxElectiveAttempts <= 0 {
		options.MaxElectiveAttempts = DefaultMaxElectiveAttempts
	}
	return options
}
