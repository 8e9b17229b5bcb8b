package model

import "errors"

// Error taxonomy kinds per §7. All but RepositoryFailure are absorbed into
// record metadata/issues by the orchestrator rather than propagated; they
// are still modeled as sentinels so internal components can use
// errors.Is/errors.As instead of string matching, following the teacher's
// storage.ErrNotFound/ErrConflict sentinel style.
var (
	ErrInputInvalid           = errors.New("extraction: input text is empty or exceeds the hard maximum")
	ErrPatternInvariantBroken = errors.New("extraction: catalog entry produced a candidate that failed its own validator")
	ErrSchemaMismatch         = errors.New("extraction: document type unrecognized or schema version incompatible")
	ErrLLMFailure             = errors.New("extraction: AI gap-filler call failed")
	ErrJudgeFailure           = errors.New("extraction: quality judge call failed")
	ErrRepositoryFailure      = errors.New("extraction: repository operation failed")
)

// WrapRepositoryFailure tags an underlying repository error so callers can
// errors.Is(err, ErrRepositoryFailure) regardless of the adapter used.
func WrapRepositoryFailure(err error) error {
	if err == nil {
		return nil
	}
	return &taggedError{msg: "repository failure", sentinel: ErrRepositoryFailure, cause: err}
}

type taggedError struct {
	msg      string
	sentinel error
	cause    error
}

func (e *taggedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *taggedError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}
