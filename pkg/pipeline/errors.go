package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrRegistryMustBeSet = errors.New("registry must be set")
	ErrProviderMustBeSet = errors.New("provider must be set")
	ErrInputMustBeSet    = errors.New("input pool must be set")
	ErrEmptyName         = errors.New("stage name must be set")
	ErrNilPool           = errors.New("stage returned no pool")

	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStage    = errors.New("unknown stage")
	ErrDuplicateName   = errors.New("duplicate stage name")
	ErrInvalidPosition = errors.New("invalid position")
	ErrConstruction    = errors.New("unable to construct stage")
	ErrExecution       = errors.New("unable to apply stage")
)

// StageError ties a failure to the stage that caused it. It matches its kind
// (one of the Err* sentinels) and unwraps to the underlying cause, if any.
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

func newStageError(stage string, kind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("stage %s: %v", e.Stage, e.Kind)
	}

	return fmt.Sprintf("stage %s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Is reports whether target is the kind of this error.
func (e *StageError) Is(target error) bool {
	return target == e.Kind
}

func (e *StageError) Unwrap() error {
	return e.Err
}
