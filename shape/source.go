package shape

import "embed"

// ImportPath is the import path of this package, as reported by reflection
// on its types.
const ImportPath = "github.com/podhmo/playspec/shape"

// Source holds the declarations of the shape types, so that their fields and
// methods can be classified without access to the source tree at run time.
//
//go:embed shape.go
var Source embed.FS
