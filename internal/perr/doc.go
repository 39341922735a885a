// Package perr implements the structured exception model: a closed Kind
// taxonomy, captured program values, source locations, "did you
// mean" member suggestions, and the inserted-stack-frame side channel that
// lets constant-folded members present the same trace as their dynamic
// counterparts.
package perr
