// Package brahms is the root of a Brahms peer-sampling node.
//
// Brahms is a gossip-based membership protocol
// in which each node keeps several views of its peers
// and samples gossip targets from them.
// The node's local view state lives in package bview;
// the gossip exchange itself is driven from outside that package.
//
// The protocol is described in "Brahms: Byzantine Resilient Random
// Membership Sampling" by Bortnikov et al.
package brahms
