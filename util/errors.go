package util

const (
	ERROR_BAD_SOURCE_PATH     = 201
	ERROR_BAD_SOURCE_GIT      = 202
	ERROR_BAD_STATS_PATH      = 203
	ERROR_NO_REVISION         = 205
	ERROR_SCENARIO_SYNTAX     = 210
	ERROR_EXPECTATION_FAILURE = 211
)

type ErrorWithCode struct {
	StatusCode    int
	InternalError error
}

var _ error = &ErrorWithCode{}

func (e ErrorWithCode) Error() string {
	return e.InternalError.Error()
}

func (e ErrorWithCode) Unwrap() error {
	return e.InternalError
}
