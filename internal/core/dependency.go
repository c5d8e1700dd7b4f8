package core

// Dependency is a view of one dependency edge from a version to a package.
type Dependency struct {
	u  *Universe
	id int32
}

var emptyDependency = dependencyRecord{parent: none, target: none}

func dependencyView(u *Universe, id int32) Dependency {
	return Dependency{u: u, id: id}
}

func (d Dependency) rec() *dependencyRecord {
	if d.u == nil {
		return &emptyDependency
	}
	return &d.u.deps[d.id]
}

// Valid reports whether d refers to an edge. The zero Dependency does not.
func (d Dependency) Valid() bool {
	return d.u != nil
}

// TargetPackage returns the package the edge points at. Targets always
// resolve: names no index provides are present as virtual packages.
func (d Dependency) TargetPackage() Package {
	r := d.rec()
	if r.target == none {
		return Package{}
	}
	return Package{u: d.u, id: r.target}
}

// TargetVersion returns the version constraint, or "" when any version will
// do.
func (d Dependency) TargetVersion() string {
	return d.rec().targetVersion
}

// CompType returns the comparison operator: "", "<<", "<=", "=", ">=" or
// ">>".
func (d Dependency) CompType() string {
	return d.rec().compType
}

// DepType returns the relationship kind, e.g. "Depends" or "Conflicts".
func (d Dependency) DepType() string {
	return d.rec().depType
}

// IsOr reports whether the next edge is an alternative to this one.
func (d Dependency) IsOr() bool {
	return d.rec().or
}

// ParentVersion returns the version declaring the edge.
func (d Dependency) ParentVersion() Version {
	r := d.rec()
	if r.parent == none {
		return Version{}
	}
	return Version{u: d.u, id: r.parent}
}

// IsNegative reports whether the edge forbids rather than requires its
// target.
func (d Dependency) IsNegative() bool {
	switch d.DepType() {
	case Conflicts, Breaks:
		return true
	}
	return false
}

// SatisfiedBy reports whether version ver meets the edge's version
// constraint. It does not look at package names.
func (d Dependency) SatisfiedBy(ver string) bool {
	r := d.rec()
	if r.compType == "" || r.targetVersion == "" {
		return true
	}
	if d.u == nil {
		return false
	}
	c := d.u.cmp(ver, r.targetVersion)
	switch r.compType {
	case "<<", "<":
		return c < 0
	case "<=":
		return c <= 0
	case "=":
		return c == 0
	case ">=":
		return c >= 0
	case ">>", ">":
		return c > 0
	case "!=":
		return c != 0
	}
	return false
}

// String renders the edge the way it is written in a control file, e.g.
// "libc6 (>= 2.36)".
func (d Dependency) String() string {
	s := d.TargetPackage().Name()
	if d.CompType() != "" {
		s += " (" + d.CompType() + " " + d.TargetVersion() + ")"
	}
	if d.IsOr() {
		s += " |"
	}
	return s
}
