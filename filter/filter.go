/*
Package filter implements the image filters that turn photographs into stylized visual novel backgrounds.

Oniazusa is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package filter

import (
  "fmt"
  "runtime"
  "strconv"
  "sync"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
)

// Filter provides functions for applying a style or color effect to individual frames.
type Filter interface {
  // GetName returns the name of the filter for identification purposes.
  GetName() string
  // GetOption returns the option of given name. Content of return value is filter specific.
  GetOption(key string) interface{}
  // SetOption adds or updates an option of the given key to the filter. Return value indicates whether option is valid.
  SetOption(key, value string) error
  // Process applies the filter effect to the specified frame and returns the transformed frame.
  // inFrames contains the list of frames from a previous filter pass or initial unfiltered frames. It can be used
  // by filters that gather statistical data from multiple frames.
  Process(frame *Buffer, inFrames []*Buffer) (*Buffer, error)
}

type optionsMap map[string]interface{}

type filterType struct {
  name    string
  create  func() Filter
}

type filterMap map[string]filterType


var filterTypes filterMap = make(filterMap)

var multithreaded bool = runtime.NumCPU() > 1


// GetMultiThreaded returns whether multithreading should be used for selected operations.
func GetMultiThreaded() bool {
  return multithreaded
}

// SetMultiThreaded sets whether multithreading should be used for selected operations.
func SetMultiThreaded(set bool) {
  multithreaded = set
}


// CreateFilter creates a new filter of the given type. Returns nil if the type does not exist.
func CreateFilter(filterName string) Filter {
  f, ok := filterTypes[filterName]
  if !ok { return nil }
  return f.create()
}


// Chain stores a sequence of filters that is applied to every frame of an input graphics.
type Chain struct {
  filters   []Filter
}

// NewChain creates an empty filter chain.
func NewChain() *Chain {
  return &Chain{filters: make([]Filter, 0)}
}

// Add appends the given filter to the chain. Nil filters are ignored.
func (c *Chain) Add(f Filter) {
  if f == nil { return }
  c.filters = append(c.filters, f)
}

// Length returns the number of filters in the chain.
func (c *Chain) Length() int {
  return len(c.filters)
}

// Get returns the filter at the specified index. Returns nil if index is out of bounds.
func (c *Chain) Get(index int) Filter {
  if index < 0 || index >= len(c.filters) { return nil }
  return c.filters[index]
}

// Apply applies the chain of filters to the input frames and returns the resulting frames.
// Input frames are not modified. Processing of a frame is aborted by the first failing filter.
func (c *Chain) Apply(frames []*Buffer) (out []*Buffer, err error) {
  tmp := make([]*Buffer, len(frames)) // working array of frames
  copy(tmp, frames)
  out = make([]*Buffer, len(frames))  // updated with resulting frames after each filter
  copy(out, frames)

  for filterIdx, filter := range c.filters {
    msg := fmt.Sprintf("Applying filter %q", filter.GetName())
    logging.Log(msg)
    if GetMultiThreaded() && len(tmp) > 1 {
      // Multi-threaded operation
      numThreads := runtime.NumCPU()
      pool := threadpool.New(numThreads, len(tmp))
      g := pool.NewJobGroup()
      var m sync.Mutex
      globalFrameIdx := 0
      for frameIdx, inFrame := range tmp {
        idx := frameIdx
        frm := inFrame
        err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
          if erf() != nil { return nil }
          outFrame, err := filter.Process(frm, out)
          if err != nil { return err }
          tmp[idx] = outFrame
          func() {
            m.Lock()
            defer m.Unlock()
            logging.LogProgressDot(globalFrameIdx, len(tmp), 79 - len(msg))
            globalFrameIdx++
          }()
          return nil
        })
        if err != nil { break }
      }
      if err2 := pool.Wait(g); err2 != nil && err == nil { err = err2 }
      if err != nil {
        logging.OverridePrefix(false, false, false).Logln("")
        err = fmt.Errorf("Filter #%d (%s): %v", filterIdx, filter.GetName(), err)
        return
      }
    } else {
      // Single-threaded operation
      for frameIdx, inFrame := range tmp {
        var outFrame *Buffer
        outFrame, err = filter.Process(inFrame, out)
        if err != nil {
          logging.OverridePrefix(false, false, false).Logln("")
          err = fmt.Errorf("Filter #%d (%s) at frame %d: %v", filterIdx, filter.GetName(), frameIdx, err)
          return
        }
        tmp[frameIdx] = outFrame
        logging.LogProgressDot(frameIdx, len(tmp), 79 - len(msg))
      }
    }
    logging.OverridePrefix(false, false, false).Logln("")
    copy(out, tmp)
  }

  return
}


// registerFilter registers a Filter for use by the converter. It must be called by each filter once.
func registerFilter(name string, create func() Filter) {
  filterTypes[name] = filterType{name, create}
}


// Converts string (oct/dec/hex) into int in range [min, max] (both inclusive).
func parseIntRange(value string, min, max int) (int, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseInt(value, 0, 0)
  if err != nil { return 0, fmt.Errorf("not an int: %s", value) }
  if int(ret) < min || int(ret) > max { return 0, fmt.Errorf("not in range [%d, %d]: %s", min, max, value) }
  return int(ret), nil
}

// Converts string into float in range [min, max] (both inclusive).
func parseFloatRange(value string, min, max float64) (float64, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseFloat(value, 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  if ret < min || ret > max { return 0, fmt.Errorf("not in range [%v, %v]: %s", min, max, value) }
  return ret, nil
}
