// Package bview contains [Store], the local state container
// for the views a Brahms node keeps of its peers.
//
// A Store holds five ordered views of peer identifiers:
// pull, push, global, sampler, and stream.
// The gossip driver feeds identifiers in as it learns them,
// picks gossip targets with [*Store.RandomElement],
// and evicts dead peers from the sampler view.
//
// Views permit duplicate identifiers and have no capacity bound.
// Both deduplication and bounding are protocol decisions
// left to the driver.
package bview
