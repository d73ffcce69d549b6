// Package roundservice owns funding rounds inside the grant-governance
// context.
//
// The module stores rounds with their four phase windows, validates window
// configuration at creation time, resolves the current phase of a round from
// the clock alone, and sweeps proposals into the voting stage when the voting
// window opens. Business rules stay in domain/application layers; storage and
// transport concerns sit behind ports and adapters.
package roundservice
