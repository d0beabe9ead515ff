// Package docpath rewrites document paths recorded in legacy metadata onto the
// directory tree of an export.
//
// Exports accumulated several mutually exclusive conventions for recording a
// letter's location. Each convention is a (match, rewrite) pair; the resolver
// tries them in order and never falls back to guessing.
package docpath

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrUnrecognizedPattern is returned when no convention matches a recorded path.
var ErrUnrecognizedPattern = errors.New("unrecognized path pattern")

// Convention recognizes one legacy path shape.
type Convention struct {
	pattern *regexp.Regexp
	Name    string
	// Prefix holds the directories under the export root that replace the
	// matched portion of the recorded path.
	Prefix []string
}

// NewConvention compiles a convention. The expression must capture the
// remainder of the path, backslash separated, in its first group.
func NewConvention(name, expr string, prefix ...string) (Convention, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Convention{}, err
	}
	if re.NumSubexp() < 1 {
		return Convention{}, errors.New("convention " + name + " must capture the path remainder")
	}
	return Convention{Name: name, pattern: re, Prefix: prefix}, nil
}

func mustConvention(name, expr string, prefix ...string) Convention {
	c, err := NewConvention(name, expr, prefix...)
	if err != nil {
		panic(err)
	}
	return c
}

// rewrite returns the path components below the export root.
func (c Convention) rewrite(recorded string) ([]string, bool) {
	m := c.pattern.FindStringSubmatch(recorded)
	if m == nil {
		return nil, false
	}

	parts := make([]string, 0, len(c.Prefix)+4)
	parts = append(parts, c.Prefix...)
	for _, seg := range strings.Split(m[1], `\`) {
		switch seg {
		case "":
			continue
		case ".", "..":
			// A rewritten path must stay inside the export.
			return nil, false
		}
		parts = append(parts, seg)
	}
	if len(parts) == len(c.Prefix) {
		return nil, false
	}
	return parts, true
}

var defaultConventions = []Convention{
	// Relative paths written through the BlobExport folder, which exports
	// later renamed away.
	mustConvention("blob-export", `(?i)^\.\.\\documents\\blobexport\\(.+)$`, "documents"),
	// Fully qualified share paths; the machine name is dropped.
	mustConvention("network-share", `(?i)^\\\\[^\\]+\\dos\\public\\(.+)$`, "documents"),
	// Drive-letter paths into the archived mail subsystem.
	mustConvention("mail-drive", `(?i)^[a-z]:\\emcmail\\(.+)$`, "documents", "emcmail"),
}

// DefaultConventions returns the known legacy conventions in priority order.
func DefaultConventions() []Convention {
	out := make([]Convention, len(defaultConventions))
	copy(out, defaultConventions)
	return out
}

// Resolver maps recorded paths to filesystem paths. It never touches the
// filesystem.
type Resolver struct {
	conventions []Convention
}

// NewResolver creates a resolver; with no conventions it uses the defaults.
func NewResolver(conventions ...Convention) *Resolver {
	if len(conventions) == 0 {
		conventions = DefaultConventions()
	}
	return &Resolver{conventions: conventions}
}

// Resolve rewrites recorded relative to exportRoot.
func (r *Resolver) Resolve(recorded, exportRoot string) (string, error) {
	path, _, err := r.ResolveWithConvention(recorded, exportRoot)
	return path, err
}

// ResolveWithConvention is Resolve that also reports which convention matched.
func (r *Resolver) ResolveWithConvention(recorded, exportRoot string) (string, string, error) {
	recorded = strings.TrimSpace(recorded)
	if recorded == "" {
		return "", "", ErrUnrecognizedPattern
	}

	for _, c := range r.conventions {
		parts, ok := c.rewrite(recorded)
		if !ok {
			continue
		}
		return filepath.Join(append([]string{exportRoot}, parts...)...), c.Name, nil
	}
	return "", "", ErrUnrecognizedPattern
}

// Resolve rewrites recorded with the default conventions.
func Resolve(recorded, exportRoot string) (string, error) {
	return NewResolver().Resolve(recorded, exportRoot)
}
