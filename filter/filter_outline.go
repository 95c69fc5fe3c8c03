package filter
/*
Implements filter "outline": Darkens strong edges into soft ink style outlines.
The detection thresholds and outline opacity are fixed, the filter has no options.
*/

const (
  filterNameOutline = "outline"
)

type FilterOutline struct {}

// Register filter for use in oniazusa.
func init() {
  registerFilter(filterNameOutline, NewFilterOutline)
}


// Creates a new Outline filter.
func NewFilterOutline() Filter {
  f := FilterOutline{}
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterOutline) GetName() string {
  return filterNameOutline
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterOutline) GetOption(key string) interface{} {
  // Doesn't have any options
  return nil
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterOutline) SetOption(key, value string) error {
  // Doesn't have options
  return nil
}

// Process applies the filter effect to the specified frame and returns the transformed frame.
func (f *FilterOutline) Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error) {
  if frame == nil { return nil, &InputError{"no frame data"} }
  return Outline(frame), nil
}
