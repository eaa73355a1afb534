// Package layout places ranked words on a single horizontal row.
//
// # Overview
//
// [Compute] maps a rank-ordered word list onto x positions and font sizes
// inside the inner frame of a canvas (canvas size minus margins). The result
// is collision-free: adjacent words are separated by at least [Params.MinGap]
// and the row is centered within a padded band.
//
// # Algorithm
//
//  1. Font sizes: counts map linearly from [minCount, maxCount] onto
//     [FontMin, FontMax]. A degenerate domain (all counts equal) maps every
//     word to FontMax.
//  2. Width estimate: fontSize * WidthFactor * runeCount. This is a fixed
//     per-character heuristic, not text metrics.
//  3. Safe padding: widest * PadFactor + PadExtra, so the widest word cannot
//     clip the frame once centered.
//  4. Baseline: rank i maps linearly onto [pad, W - pad] over the domain
//     [0, max(1, L-1)].
//  5. Sweep: left to right, a word whose left edge comes closer than MinGap
//     to its predecessor's right edge is pushed right just enough.
//  6. Recenter: the midpoint of the first and last x is moved onto the
//     midpoint of the padded band.
//
// Every word sits at y = H/2. All steps are pure; the same input always
// yields the same [Layout].
package layout
