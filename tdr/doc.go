// Package tdr turns a swept frequency-domain measurement into a time-domain step response.
//
// StepResponse resamples one S-parameter of a vna.NetworkRecord onto a uniform grid with a
// not-a-knot cubic spline, takes the inverse FFT, applies a Kaiser window and keeps the real
// part. Sample k of the result sits at time k/(n*df), where n is the grid size and df the
// grid spacing in Hz, so a reflection from a cable fault at distance d appears near
// k = 2*d*n*df/(vf*c).
//
// The transform is a pure function: it never modifies the record and returns identical
// results for identical inputs.
package tdr
