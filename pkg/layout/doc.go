// Package layout tiles a hall grid with stalls.
//
// A hall is a fixed grid of [Grid.Rows] by [Grid.Cols] cells. Only the cells
// on the outer border and on the boundary of one centered inner rectangle are
// usable; together they form an aisle ring around the hall and a block of
// stalls in the middle. Everything else is walkway.
//
// Two entry points fill the usable cells:
//
//   - [Grid.Generate] builds a procedural floor plan for a map id. Geometry is
//     a pure function of the map id; reserved/available status is drawn from
//     a second sequence seeded by the map id and the event id, so the same
//     (map, event) pair always renders the same picture.
//   - [Grid.Place] arranges stalls fetched from the backend onto the usable
//     cells in scan order and pads the remainder with placeholder stalls.
//
// Both guarantee that no two stalls share a cell. Generate additionally
// covers every usable cell exactly once.
//
// Randomness comes from [LCG], a documented 64-bit linear congruential
// generator, so layouts are reproducible across platforms and releases.
package layout
