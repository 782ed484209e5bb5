package scidata

import (
	"strconv"
	"strings"
)

// pathRef builds JSON Pointer paths in a chain-safe way. Keys are escaped per
// RFC 6901, so axis or component names containing '/' stay addressable.
type pathRef struct {
	parts []string
}

func rootPath() pathRef { return pathRef{} }

// fieldPath is the pointer of a top-level field.
func fieldPath(name string) pathRef { return rootPath().field(name) }

func (p pathRef) field(name string) pathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
