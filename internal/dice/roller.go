package dice

import "go.uber.org/zap"

// Roller wraps a Source and logs each roll at debug level with its purpose.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller. A nil logger disables roll logging.
//
// Precondition: src must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Die rolls a single die with the given number of sides.
//
// Precondition: sides >= 1.
// Postcondition: result is in [1, sides].
func (r *Roller) Die(sides int, purpose string) int {
	result := r.src.Intn(sides) + 1
	r.logger.Debug("dice roll",
		zap.String("purpose", purpose),
		zap.Int("sides", sides),
		zap.Int("result", result),
	)
	return result
}

// D6 rolls a six-sided die.
func (r *Roller) D6(purpose string) int {
	return r.Die(6, purpose)
}

// Uniform returns a value in [0, max).
func (r *Roller) Uniform(max float64, purpose string) float64 {
	result := r.src.Float64() * max
	r.logger.Debug("uniform roll",
		zap.String("purpose", purpose),
		zap.Float64("max", max),
		zap.Float64("result", result),
	)
	return result
}

// Pick returns an index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(n int, purpose string) int {
	idx := r.src.Intn(n)
	r.logger.Debug("pick",
		zap.String("purpose", purpose),
		zap.Int("choices", n),
		zap.Int("index", idx),
	)
	return idx
}

// Chance reports whether a roll in [0, 1) lands below p.
func (r *Roller) Chance(p float64, purpose string) bool {
	roll := r.src.Float64()
	hit := roll < p
	r.logger.Debug("chance roll",
		zap.String("purpose", purpose),
		zap.Float64("threshold", p),
		zap.Float64("roll", roll),
		zap.Bool("hit", hit),
	)
	return hit
}

// Source returns the underlying randomness source.
func (r *Roller) Source() Source {
	return r.src
}
