// Package flat provides an exact brute-force vector index.
//
// Every query computes the squared Euclidean distance to every stored
// vector and keeps the k best in a bounded max-heap. There is no pruning
// structure, so results are exact and cost O(count × dimension) per query.
package flat
