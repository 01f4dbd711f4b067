/*
Package vtpost builds and runs the two vector-tile post-processors:

# Unionizer

Merges compatible linestrings that meet at a shared endpoint, using an
angle-weighted heuristic to decide which pairs to join and a configurable
tag-reconciliation strategy for the merged feature's attributes.

# Adminizer

Stamps each feature with an attribute copied from the lowest-indexed
auxiliary polygon it spatially intersects, short-circuiting once index 0 is
reached.

Both are constructed from a config.Tree - a string-keyed property tree -
and composed via Pipeline, which runs them over a layer in caller-chosen
order.
*/
package vtpost
