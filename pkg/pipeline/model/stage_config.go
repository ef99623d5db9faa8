package model

// StageConfig is a request to run a stage, as written by a user or a program.
type StageConfig struct {
	// Name references a registered stage provider.
	Name string
	// Position is relative to the stage category range unless Absolute is set.
	Position Position
	// Absolute makes Position a literal global coordinate.
	Absolute bool
	// Arguments and Options are passed through to the provider untouched.
	Arguments []string
	Options   map[string]string
}

// ResolvedStage is a configuration entry once its position has been computed.
type ResolvedStage struct {
	Name     string
	Category Category
	Position int
	// Sequence is the index of the entry in the configuration list. It only
	// breaks ties between equal positions.
	Sequence int
}
