package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged rolling.
// All rolls are logged at debug level with a label naming what the roll decides.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Between returns a uniform int in the closed range [lo, hi].
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func (r *Roller) Between(label string, lo, hi int) int {
	if hi < lo {
		panic("dice: Between called with hi < lo")
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("dice roll",
		zap.String("roll", label),
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("result", v),
	)
	return v
}

// Intn returns a uniform int in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Intn(label string, n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice roll",
		zap.String("roll", label),
		zap.Int("n", n),
		zap.Int("result", v),
	)
	return v
}

// Float returns a uniform float in [0, 1).
func (r *Roller) Float(label string) float64 {
	v := r.src.Float64()
	r.logger.Debug("dice roll",
		zap.String("roll", label),
		zap.Float64("result", v),
	)
	return v
}

// Chance reports whether a uniform [0, 1) draw falls below p.
//
// Postcondition: p <= 0 always returns false; p >= 1 always returns true.
func (r *Roller) Chance(label string, p float64) bool {
	v := r.src.Float64()
	hit := v < p
	r.logger.Debug("dice chance",
		zap.String("roll", label),
		zap.Float64("p", p),
		zap.Float64("draw", v),
		zap.Bool("hit", hit),
	)
	return hit
}
