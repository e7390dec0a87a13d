package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sarchlab/meshnoc/router"
)

// Verbosity controls how much the simulation logs.
type Verbosity int

// Verbosity levels.
const (
	VerboseOff Verbosity = iota
	VerboseLow
	VerboseMedium
	VerboseHigh
)

var verbosityNames = map[string]Verbosity{
	"off":    VerboseOff,
	"low":    VerboseLow,
	"medium": VerboseMedium,
	"high":   VerboseHigh,
}

// ParseVerbosity converts a name such as "low" into a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	v, found := verbosityNames[strings.ToLower(s)]
	if !found {
		return VerboseOff, errors.Errorf("unknown verbosity %q", s)
	}

	return v, nil
}

func (v Verbosity) String() string {
	for name, level := range verbosityNames {
		if level == v {
			return name
		}
	}

	return "unknown"
}

// Level returns the lowest slog level that is printed at this verbosity.
// Broadcast decisions are logged at Info, reservations at Debug and every
// flit movement at router.LevelTrace.
func (v Verbosity) Level() slog.Level {
	switch v {
	case VerboseLow:
		return slog.LevelInfo
	case VerboseMedium:
		return slog.LevelDebug
	case VerboseHigh:
		return router.LevelTrace
	default:
		return slog.LevelWarn
	}
}

// Params holds the parameters of a mesh simulation.
type Params struct {
	Width  int
	Height int

	BufferDepth   int
	MaxPacketSize int

	RoutingAlgorithm  string
	SelectionStrategy string

	// InjectCongestionThreshold is the free-slot ratio of a local input
	// queue below which a newly injected broadcast takes the snake path.
	InjectCongestionThreshold float64

	// MaxDrainedFlits stops the simulation after that many flits have been
	// delivered. 0 means no limit.
	MaxDrainedFlits uint64

	Verbose Verbosity
}

// Keys of the environment variables and .env entries read by LoadParams.
const (
	KeyWidth                     = "MESHNOC_WIDTH"
	KeyHeight                    = "MESHNOC_HEIGHT"
	KeyBufferDepth               = "MESHNOC_BUFFER_DEPTH"
	KeyMaxPacketSize             = "MESHNOC_MAX_PACKET_SIZE"
	KeyRoutingAlgorithm          = "MESHNOC_ROUTING_ALGORITHM"
	KeySelectionStrategy         = "MESHNOC_SELECTION_STRATEGY"
	KeyInjectCongestionThreshold = "MESHNOC_INJECT_CONGESTION_THRESHOLD"
	KeyMaxDrainedFlits           = "MESHNOC_MAX_DRAINED_FLITS"
	KeyVerbose                   = "MESHNOC_VERBOSE"
)

var paramKeys = []string{
	KeyWidth,
	KeyHeight,
	KeyBufferDepth,
	KeyMaxPacketSize,
	KeyRoutingAlgorithm,
	KeySelectionStrategy,
	KeyInjectCongestionThreshold,
	KeyMaxDrainedFlits,
	KeyVerbose,
}

// DefaultParams returns the parameters of a 4x4 XY mesh.
func DefaultParams() Params {
	return Params{
		Width:                     4,
		Height:                    4,
		BufferDepth:               4,
		MaxPacketSize:             8,
		RoutingAlgorithm:          "XY",
		SelectionStrategy:         "FIRST",
		InjectCongestionThreshold: 0.5,
		Verbose:                   VerboseOff,
	}
}

// LoadParams starts from the default parameters and overrides them with the
// given .env files and then with the process environment.
func LoadParams(files ...string) (Params, error) {
	p := DefaultParams()
	values := map[string]string{}

	if len(files) > 0 {
		fileValues, err := godotenv.Read(files...)
		if err != nil {
			return p, errors.Wrap(err, "failed to read parameter files")
		}

		values = fileValues
	}

	for _, key := range paramKeys {
		if v, found := os.LookupEnv(key); found {
			values[key] = v
		}
	}

	if err := p.apply(values); err != nil {
		return p, err
	}

	return p, p.Validate()
}

func (p *Params) apply(values map[string]string) error {
	var err error

	for key, value := range values {
		switch key {
		case KeyWidth:
			p.Width, err = strconv.Atoi(value)
		case KeyHeight:
			p.Height, err = strconv.Atoi(value)
		case KeyBufferDepth:
			p.BufferDepth, err = strconv.Atoi(value)
		case KeyMaxPacketSize:
			p.MaxPacketSize, err = strconv.Atoi(value)
		case KeyRoutingAlgorithm:
			p.RoutingAlgorithm = strings.ToUpper(value)
		case KeySelectionStrategy:
			p.SelectionStrategy = strings.ToUpper(value)
		case KeyInjectCongestionThreshold:
			p.InjectCongestionThreshold, err = strconv.ParseFloat(value, 64)
		case KeyMaxDrainedFlits:
			p.MaxDrainedFlits, err = strconv.ParseUint(value, 10, 64)
		case KeyVerbose:
			p.Verbose, err = ParseVerbosity(value)
		}

		if err != nil {
			return errors.Wrapf(err, "invalid value %q for %s", value, key)
		}
	}

	return nil
}

// Validate checks that the parameters describe a mesh that can be built.
func (p Params) Validate() error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return errors.Errorf("invalid mesh size %dx%d", p.Width, p.Height)
	case p.Width*p.Height < 2:
		return errors.New("a mesh needs at least two nodes")
	case p.BufferDepth < 1:
		return errors.Errorf("buffer depth %d is less than 1", p.BufferDepth)
	case p.MaxPacketSize < 2:
		return errors.Errorf(
			"max packet size %d cannot hold a head and a tail",
			p.MaxPacketSize)
	case p.InjectCongestionThreshold < 0 || p.InjectCongestionThreshold > 1:
		return errors.Errorf(
			"inject congestion threshold %g is outside [0, 1]",
			p.InjectCongestionThreshold)
	}

	return nil
}
