// Package tilepath provides A* path search over rectangular tile maps.
//
// A Finder is built once per map and reused across searches. It exposes:
//
//   - FindPath: run a search to completion and get a Result.
//   - Stepper: iterate a search one expansion at a time to drive UIs or debugging tools.
//   - FindPaths: run a batch of searches on a pool of workers, one Finder each.
//
// Blocking and movement cost are decided by the map through the TileMap
// interface, per Mover. The Mover value is passed through untouched so a map
// can implement rules such as "planes fly anywhere" or "boats stay on water".
//
// A Finder is not safe for concurrent use.
package tilepath
