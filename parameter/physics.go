package parameter

// Motion defaults (user tunable through the config store)
const (
	// DuckSize is the default diameter in pixels
	DuckSize    = 100.0
	DuckSizeMin = 32.0
	DuckSizeMax = 400.0

	// Friction is the velocity retained per tick (0.95 = ~5% loss per tick)
	Friction    = 0.95
	FrictionMin = 0.0
	FrictionMax = 0.999

	// BounceDamping is the fraction of velocity retained (inverted) after a wall hit
	BounceDamping    = 0.7
	BounceDampingMin = 0.0
	BounceDampingMax = 1.0

	// AccelerationMultiplier scales throw velocity on release
	AccelerationMultiplier    = 1.0
	AccelerationMultiplierMin = 1.0
	AccelerationMultiplierMax = 5.0
)
