package domain

import "go.trai.ch/zerr"

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// Lockfile is a reproducible snapshot of a resolved graph: every node with
// its exact reference, revision and package id.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int `json:"version"`
	// Fingerprint is the graph fingerprint at the time of locking.
	Fingerprint string       `json:"fingerprint,omitempty"`
	Nodes       []LockedNode `json:"nodes"`
}

// LockedNode is one node of a Lockfile. Requires and BuildRequires hold node ids.
type LockedNode struct {
	ID            int    `json:"id"`
	Ref           string `json:"ref,omitempty"`
	Context       string `json:"context,omitempty"`
	PackageID     string `json:"package_id,omitempty"`
	Requires      []int  `json:"requires,omitempty"`
	BuildRequires []int  `json:"build_requires,omitempty"`
}

// NewLockfile captures a resolved graph.
func NewLockfile(g *Graph) *Lockfile {
	lock := &Lockfile{Version: LockfileVersion, Fingerprint: g.Fingerprint()}
	for _, n := range g.Nodes() {
		locked := LockedNode{ID: n.ID, PackageID: n.PackageID()}
		if !n.Virtual {
			locked.Ref = n.Ref.String()
			locked.Context = n.Context.String()
		}
		for _, e := range n.Dependencies {
			if e.Require.Build {
				locked.BuildRequires = append(locked.BuildRequires, e.Dst.ID)
			} else {
				locked.Requires = append(locked.Requires, e.Dst.ID)
			}
		}
		lock.Nodes = append(lock.Nodes, locked)
	}
	return lock
}

// Pins returns the locked reference of every package per context.
func (l *Lockfile) Pins() (map[NodeKey]Reference, error) {
	pins := make(map[NodeKey]Reference, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.Ref == "" {
			continue
		}
		ref, err := ParseReference(n.Ref)
		if err != nil {
			return nil, zerr.With(err, "lockfile_node", n.ID)
		}
		ctx, err := ParseContext(n.Context)
		if err != nil {
			return nil, zerr.With(err, "lockfile_node", n.ID)
		}
		pins[NodeKey{Package: ref.PackageKey(), Context: ctx}] = ref
	}
	return pins, nil
}
