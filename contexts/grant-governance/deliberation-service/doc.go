// Package deliberationservice hosts the deliberation stage of a funding
// round. Reviewers cast yes/no recommendation votes with written reasoning,
// community members attach free-form feedback, and the service derives a
// per-proposal recommendation that informs the final community vote without
// gating it.
package deliberationservice
