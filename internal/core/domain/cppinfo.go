package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Component is the build/link metadata of a package or of one of its components.
type Component struct {
	Name        string
	IncludeDirs []string
	LibDirs     []string
	Libs        []string
	SystemLibs  []string
	Defines     []string
	CFlags      []string
	CxxFlags    []string
	LinkFlags   []string
	// Requires names other components: "cmp" for a component of the same
	// package, "pkg::cmp" for a component of a direct dependency.
	Requires []string
}

func (c *Component) empty() bool {
	return len(c.IncludeDirs) == 0 && len(c.LibDirs) == 0 && len(c.Libs) == 0 &&
		len(c.SystemLibs) == 0 && len(c.Defines) == 0 && len(c.CFlags) == 0 &&
		len(c.CxxFlags) == 0 && len(c.LinkFlags) == 0 && len(c.Requires) == 0
}

// CppInfo is the metadata a package publishes through its package_info hook.
// Either the package-level Root is filled or components are declared; mixing
// both is rejected by Validate.
type CppInfo struct {
	Package    string
	Root       Component
	components []*Component
}

// NewCppInfo creates empty metadata for a package.
func NewCppInfo(pkg string) *CppInfo {
	return &CppInfo{Package: pkg, Root: Component{Name: pkg}}
}

// Component returns the named component, declaring it on first use.
func (c *CppInfo) Component(name string) *Component {
	for _, cmp := range c.components {
		if cmp.Name == name {
			return cmp
		}
	}
	cmp := &Component{Name: name}
	c.components = append(c.components, cmp)
	return cmp
}

// HasComponents reports whether any component is declared.
func (c *CppInfo) HasComponents() bool {
	return len(c.components) > 0
}

// Components returns the components in declaration order.
func (c *CppInfo) Components() []*Component {
	return slices.Clone(c.components)
}

func (c *CppInfo) lookup(name string) *Component {
	for _, cmp := range c.components {
		if cmp.Name == name {
			return cmp
		}
	}
	return nil
}

// Validate checks the component requirements against the package's direct
// dependencies. deps maps a dependency name to its metadata.
func (c *CppInfo) Validate(deps map[string]*CppInfo) error {
	if !c.HasComponents() {
		return nil
	}
	if !c.Root.empty() {
		return zerr.With(zerr.Wrap(ErrComponentRequires,
			c.Package+" declares components and package-level metadata at the same time"), "package", c.Package)
	}
	for _, cmp := range c.components {
		for _, req := range cmp.Requires {
			if err := c.validateRequire(cmp, req, deps); err != nil {
				return err
			}
		}
	}
	_, err := c.SortedComponents()
	return err
}

func (c *CppInfo) validateRequire(cmp *Component, req string, deps map[string]*CppInfo) error {
	pkg, name, scoped := strings.Cut(req, "::")
	if !scoped || pkg == c.Package {
		if !scoped {
			name = req
		}
		if c.lookup(name) == nil {
			return componentNotFound(c.Package, cmp.Name, c.Package, name)
		}
		return nil
	}
	dep, ok := deps[pkg]
	if !ok {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrComponentRequires,
			"component "+c.Package+"::"+cmp.Name+" requires "+req+" but "+pkg+" is not a direct dependency"),
			"package", c.Package), "component", cmp.Name), "requires", req)
	}
	if !dep.HasComponents() {
		if name == pkg {
			return nil
		}
		return componentNotFound(c.Package, cmp.Name, pkg, name)
	}
	if dep.lookup(name) == nil {
		return componentNotFound(c.Package, cmp.Name, pkg, name)
	}
	return nil
}

func componentNotFound(pkg, component, target, missing string) error {
	msg := "component " + pkg + "::" + component + " requires " + target + "::" + missing +
		" but package " + target + " has no component " + missing
	err := zerr.Wrap(ErrComponentNotFound, msg)
	err = zerr.With(err, "package", pkg)
	err = zerr.With(err, "component", component)
	err = zerr.With(err, "required_package", target)
	return zerr.With(err, "required_component", missing)
}

// SortedComponents orders components so that every component comes after the
// components of the same package it requires.
func (c *CppInfo) SortedComponents() ([]*Component, error) {
	pending := slices.Clone(c.components)
	var sorted []*Component
	placed := make(map[string]bool, len(pending))
	for len(pending) > 0 {
		progressed := false
		for i := 0; i < len(pending); i++ {
			cmp := pending[i]
			ready := true
			for _, req := range cmp.Requires {
				if local := c.localRequire(req); local != "" && !placed[local] {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			sorted = append(sorted, cmp)
			placed[cmp.Name] = true
			pending = slices.Delete(pending, i, i+1)
			i--
			progressed = true
		}
		if !progressed {
			names := make([]string, 0, len(pending))
			for _, cmp := range pending {
				names = append(names, cmp.Name)
			}
			return nil, zerr.With(zerr.With(zerr.Wrap(ErrComponentCycle, c.Package), "package", c.Package),
				"components", strings.Join(names, ", "))
		}
	}
	return sorted, nil
}

func (c *CppInfo) localRequire(req string) string {
	pkg, name, scoped := strings.Cut(req, "::")
	if !scoped {
		return req
	}
	if pkg == c.Package {
		return name
	}
	return ""
}

// ComponentView is a read-only, aggregated projection of build/link metadata.
type ComponentView struct {
	Name        string
	IncludeDirs []string
	LibDirs     []string
	Libs        []string
	SystemLibs  []string
	Defines     []string
	CFlags      []string
	CxxFlags    []string
	LinkFlags   []string
}

// View aggregates the package: the root metadata, or the components with
// requiring components first, so libraries link in dependency order.
func (c *CppInfo) View() ComponentView {
	if !c.HasComponents() {
		return viewOf(c.Package, &c.Root)
	}
	sorted, err := c.SortedComponents()
	if err != nil {
		sorted = c.components
	}
	views := make([]ComponentView, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		views = append(views, viewOf(c.Package, sorted[i]))
	}
	merged := MergeViews(views...)
	merged.Name = c.Package
	return merged
}

// ComponentView returns the projection of one component.
func (c *CppInfo) ComponentView(name string) (ComponentView, bool) {
	cmp := c.lookup(name)
	if cmp == nil {
		return ComponentView{}, false
	}
	return viewOf(c.Package+"::"+name, cmp), true
}

func viewOf(name string, cmp *Component) ComponentView {
	return ComponentView{
		Name:        name,
		IncludeDirs: slices.Clone(cmp.IncludeDirs),
		LibDirs:     slices.Clone(cmp.LibDirs),
		Libs:        slices.Clone(cmp.Libs),
		SystemLibs:  slices.Clone(cmp.SystemLibs),
		Defines:     slices.Clone(cmp.Defines),
		CFlags:      slices.Clone(cmp.CFlags),
		CxxFlags:    slices.Clone(cmp.CxxFlags),
		LinkFlags:   slices.Clone(cmp.LinkFlags),
	}
}

// MergeViews concatenates views in order, dropping repeated entries.
func MergeViews(views ...ComponentView) ComponentView {
	var out ComponentView
	for _, v := range views {
		out.IncludeDirs = appendUnique(out.IncludeDirs, v.IncludeDirs)
		out.LibDirs = appendUnique(out.LibDirs, v.LibDirs)
		out.Libs = appendUnique(out.Libs, v.Libs)
		out.SystemLibs = appendUnique(out.SystemLibs, v.SystemLibs)
		out.Defines = appendUnique(out.Defines, v.Defines)
		out.CFlags = appendUnique(out.CFlags, v.CFlags)
		out.CxxFlags = appendUnique(out.CxxFlags, v.CxxFlags)
		out.LinkFlags = appendUnique(out.LinkFlags, v.LinkFlags)
	}
	return out
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
