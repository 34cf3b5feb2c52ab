package listdef

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/tallylists/tally/internal/schema"
)

// listPath is where a definition document places its list struct.
var listPath = cue.ParsePath("list")

// Load reads and compiles a list definition from a .cue file.
//
// The error covers I/O and compilation failures (fail-fast, one at a
// time); the []DefError slice carries every structural problem found in
// an otherwise compilable definition. A usable list comes with a nil
// error and an empty slice.
func Load(path string) (*schema.List, []DefError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read list definition: %w", err)
	}
	return Parse(data, path)
}

// Parse compiles a list definition from raw CUE source. filename is
// used for error positions only.
func Parse(data []byte, filename string) (*schema.List, []DefError, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, nil, formatCUEError(err)
	}

	listVal := v.LookupPath(listPath)
	if !listVal.Exists() {
		return nil, nil, &CompileError{Field: "list", Message: "document has no top-level list struct", Pos: v.Pos()}
	}

	list, err := CompileList(listVal)
	if err != nil {
		return nil, nil, err
	}

	if defErrs := Check(list); len(defErrs) > 0 {
		return nil, defErrs, nil
	}
	return list, nil, nil
}
