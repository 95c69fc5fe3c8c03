package filter
/*
Implements filter "flatten": Edge-preserving smoothing that flattens photographic texture
into cel-shaded regions. The smoothing parameters are fixed, the filter has no options.
*/

const (
  filterNameFlatten = "flatten"
)

type FilterFlatten struct {}

// Register filter for use in oniazusa.
func init() {
  registerFilter(filterNameFlatten, NewFilterFlatten)
}


// Creates a new Flatten filter.
func NewFilterFlatten() Filter {
  f := FilterFlatten{}
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterFlatten) GetName() string {
  return filterNameFlatten
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterFlatten) GetOption(key string) interface{} {
  // Doesn't have any options
  return nil
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterFlatten) SetOption(key, value string) error {
  // Doesn't have options
  return nil
}

// Process applies the filter effect to the specified frame and returns the transformed frame.
func (f *FilterFlatten) Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error) {
  if frame == nil { return nil, &InputError{"no frame data"} }
  return Flatten(frame), nil
}
