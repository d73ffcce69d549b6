// Package considerationservice implements the consideration stage of the
// grant-governance context.
//
// The module owns reviewer consideration votes, cached on-chain vote
// snapshots, the eligibility verdict that merges both sources, and the status
// machine that advances or rejects proposals based on that verdict. Status
// transitions are one-way and race-safe: they go through conditional updates
// keyed on the expected current status.
package considerationservice
