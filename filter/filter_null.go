package filter
/*
Implements filter "null": Simply returns a copy of the input frame.
*/

const (
  filterNameNull = "null"
)

type FilterNull struct {}

// Register filter for use in oniazusa.
func init() {
  registerFilter(filterNameNull, NewFilterNull)
}


// Creates a new Null filter.
func NewFilterNull() Filter {
  f := FilterNull{}
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterNull) GetName() string {
  return filterNameNull
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterNull) GetOption(key string) interface{} {
  // Doesn't have any options
  return nil
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterNull) SetOption(key, value string) error {
  // Doesn't have options
  return nil
}

// Process applies the filter effect to the specified frame and returns the transformed frame.
func (f *FilterNull) Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error) {
  return frame.Clone(), nil
}
