package filter
/*
Implements filter "kizuato": Moody grading with desaturated colors, a cold shadow cast and
a vignette. The grading parameters are fixed, the filter has no options.
*/

const (
  filterNameKizuato = "kizuato"
)

type FilterKizuato struct {}

// Register filter for use in oniazusa.
func init() {
  registerFilter(filterNameKizuato, NewFilterKizuato)
}


// Creates a new Kizuato filter.
func NewFilterKizuato() Filter {
  f := FilterKizuato{}
  return &f
}

// GetName returns the name of the filter for identification purposes.
func (f *FilterKizuato) GetName() string {
  return filterNameKizuato
}

// GetOption returns the option of given name. Content of return value is filter specific.
func (f *FilterKizuato) GetOption(key string) interface{} {
  // Doesn't have any options
  return nil
}

// SetOption adds or updates an option of the given key to the filter.
func (f *FilterKizuato) SetOption(key, value string) error {
  // Doesn't have options
  return nil
}

// Process applies the filter effect to the specified frame and returns the transformed frame.
func (f *FilterKizuato) Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error) {
  if frame == nil { return nil, &InputError{"no frame data"} }
  return Kizuato(frame), nil
}
