// Package stagechain is a small host for multichannel processing stages.
//
// A Chain loads a JSON pipeline description, creates one Runtime per node
// from a Registry, and runs the nodes in topological order over a
// [channel][sample] float32 block in place. The chain also forwards
// channel-count changes and save/load requests to the runtimes that support
// them.
//
// Pipelines are linear: every node has at most one parent and one child.
//
//	{
//	  "nodes": [
//	    {"id": "_input", "type": "_input"},
//	    {"id": "ref", "type": "virtual-ref", "params": {"globalGain": 1}},
//	    {"id": "_output", "type": "_output"}
//	  ],
//	  "connections": [
//	    {"from": "_input", "to": "ref"},
//	    {"from": "ref", "to": "_output"}
//	  ]
//	}
package stagechain
