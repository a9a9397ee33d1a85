package pipeline

import "fmt"

// EmptyResultError reports a stage that produced zero rows, so downstream
// stages would fail obscurely. The run is aborted with the stage name.
type EmptyResultError struct {
	Stage string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("stage %q produced no rows", e.Stage)
}
