// Package view derives what the user sees from the full item list.
//
// # Pipeline
//
// Apply runs four stages strictly in this order:
//
//  1. Search: case-insensitive substring match on the item name. An empty
//     term filters nothing. The term is used as typed (no trimming).
//  2. Category: exact, case-sensitive match. AllCategories filters nothing.
//  3. Favourites: with FavouritesOnly set, keep only favourite ids.
//  4. Sort: stable, by name (locale collation), price or rating. Descending
//     negates the comparison, so ties keep input order in both directions.
//
// Paginate then slices a 1-based page. It never clamps: a page number outside
// the results returns an empty slice.
//
// # Controller
//
// Controller is the boundary between the pipeline and the presentation layer.
// It holds the view state and enforces the navigation contract:
//
//   - any change to the search term, category, sort or favourites-only flag
//     resets the page to 1;
//   - PrevPage and NextPage refuse to move outside [1, TotalPages];
//   - events that shrink the results without a reset (a favourite removed
//     while favourites-only is on, a reloaded item list) clamp the page into
//     [1, max(1, TotalPages)].
//
// Frame reports why a result is empty: EmptyNoFavourites when the
// favourites-only filter is active, EmptyNoResults otherwise.
package view
