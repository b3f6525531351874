package whodata

import "fmt"

// FetchError reports that one of the sources could not be retrieved or
// decoded. A load that returns a FetchError produced no dataset at all.
type FetchError struct {
	Source   Source
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s data from %s: %v", e.Source, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EmptyDatasetError reports that an aggregate was requested over a source
// that loaded zero usable rows.
type EmptyDatasetError struct {
	Source Source
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s dataset is empty", e.Source)
}
