// Package sinkresolver implements the MST-based sink resolver: the
// hardest subcomponent of the engine. After a single-flow router assigns
// receivers by steepest descent, many interior nodes form closed
// depressions whose basin root is not a base level. MSTResolver builds an
// auxiliary basin graph, computes a minimum spanning tree of it rooted at
// a virtual super-source connected to every base-level basin, and
// rewrites the flow graph's receivers (and, for the CARVE route method,
// elevation) so every basin drains to a true base level.
//
// The MST step offers two selectable algorithms behind one dispatcher:
// KRUSKAL is a sort-then-union-find construction; BORUVKA selects the
// lightest outgoing edge per component per round by scanning every
// candidate edge, repeating rounds until no component can be joined.
package sinkresolver
