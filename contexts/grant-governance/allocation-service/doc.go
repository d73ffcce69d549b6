// Package allocationservice distributes a funding round's budget across the
// proposals that reached the community vote. Ranked-choice winners are fetched
// from the on-chain vote oracle and funded greedily in rank order; the
// allocation is recomputed on every read and only persisted as proposal
// statuses when the round is finalized.
package allocationservice
