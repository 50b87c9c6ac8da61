package domain

import (
	"iter"
	"slices"
	"strings"
)

// DependencyGraph is the set of resolved source files and their directed
// import edges. Nodes live in an index-addressable table and edges are index
// pairs, which keeps cyclic import graphs representable and traversals
// allocation-light. Import cycles are legal; every traversal carries a
// visited set. Once built the graph is read-only.
type DependencyGraph struct {
	nodes     []SourceFile
	index     map[InternedString]int
	imports   [][]int
	importers [][]int
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		index: make(map[InternedString]int),
	}
}

// AddNode inserts f and returns its index. If a node with the same canonical
// path already exists its index is returned unchanged.
func (g *DependencyGraph) AddNode(f SourceFile) int {
	if i, ok := g.index[f.Path]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, f)
	g.index[f.Path] = i
	g.imports = append(g.imports, nil)
	g.importers = append(g.importers, nil)
	return i
}

// AddEdge records that node from imports node to. The edge is recorded once;
// duplicates are ignored. The target's canonical path is appended to the
// importing node's ordered import list.
func (g *DependencyGraph) AddEdge(from, to int) {
	if slices.Contains(g.imports[from], to) {
		return
	}
	g.imports[from] = append(g.imports[from], to)
	g.importers[to] = append(g.importers[to], from)
	g.nodes[from].Imports = append(g.nodes[from].Imports, g.nodes[to].Path)
}

// Len returns the number of nodes.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Node returns a pointer to the node at index i. The pointer is only valid
// for reading once resolution has finished.
func (g *DependencyGraph) Node(i int) *SourceFile {
	return &g.nodes[i]
}

// Lookup returns the index of the node with the given canonical path.
func (g *DependencyGraph) Lookup(path InternedString) (int, bool) {
	i, ok := g.index[path]
	return i, ok
}

// Files yields all nodes in insertion order.
func (g *DependencyGraph) Files() iter.Seq[*SourceFile] {
	return func(yield func(*SourceFile) bool) {
		for i := range g.nodes {
			if !yield(&g.nodes[i]) {
				return
			}
		}
	}
}

// Imports returns the indices of the nodes that node i imports.
func (g *DependencyGraph) Imports(i int) []int {
	return g.imports[i]
}

// Importers returns the indices of the nodes that import node i.
func (g *DependencyGraph) Importers(i int) []int {
	return g.importers[i]
}

// Cluster is a maximal set of files connected by import edges, taking the
// undirected closure. All files of a cluster compile with one compiler
// version, so the intersection of their constraints must be non-empty.
type Cluster struct {
	Language Language
	// Files holds the canonical paths of the members, sorted.
	Files []InternedString
}

// Clusters partitions the graph into connected components. The result is
// deterministic: components are discovered in node insertion order and each
// component's file list is sorted.
func (g *DependencyGraph) Clusters() []Cluster {
	visited := make([]bool, len(g.nodes))
	var clusters []Cluster

	for start := range g.nodes {
		if visited[start] {
			continue
		}
		var members []int
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, i)
			for _, n := range g.imports[i] {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
			for _, n := range g.importers[i] {
				if !visited[n] {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}

		files := make([]InternedString, len(members))
		for j, i := range members {
			files[j] = g.nodes[i].Path
		}
		slices.SortFunc(files, func(a, b InternedString) int {
			return strings.Compare(a.String(), b.String())
		})
		clusters = append(clusters, Cluster{
			Language: g.nodes[start].Language,
			Files:    files,
		})
	}

	return clusters
}

// ImporterClosure expands a seed set of dirty files with every file that
// transitively imports one of them, following reverse edges with a visited
// set so cycles terminate.
func (g *DependencyGraph) ImporterClosure(seed map[InternedString]struct{}) map[InternedString]struct{} {
	closure := make(map[InternedString]struct{}, len(seed))
	var stack []int
	for path := range seed {
		if i, ok := g.index[path]; ok {
			closure[path] = struct{}{}
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, imp := range g.importers[i] {
			path := g.nodes[imp].Path
			if _, ok := closure[path]; ok {
				continue
			}
			closure[path] = struct{}{}
			stack = append(stack, imp)
		}
	}
	return closure
}

// ImportClosure expands a seed set of files with everything they transitively
// import. Used to assemble compiler input: a compiler needs callee sources
// even when those are clean.
func (g *DependencyGraph) ImportClosure(seed []InternedString) []InternedString {
	inClosure := make(map[int]struct{}, len(seed))
	var stack []int
	for _, path := range seed {
		if i, ok := g.index[path]; ok {
			if _, seen := inClosure[i]; !seen {
				inClosure[i] = struct{}{}
				stack = append(stack, i)
			}
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, imp := range g.imports[i] {
			if _, seen := inClosure[imp]; !seen {
				inClosure[imp] = struct{}{}
				stack = append(stack, imp)
			}
		}
	}

	paths := make([]InternedString, 0, len(inClosure))
	for i := range inClosure {
		paths = append(paths, g.nodes[i].Path)
	}
	slices.SortFunc(paths, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return paths
}
