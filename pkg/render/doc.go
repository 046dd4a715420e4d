// Package render draws a hall's floor plan.
//
// Three renderings share the same classification of stalls, a [View]:
//
//   - [Text]: a colored terminal grid, three characters per column, with a
//     legend line
//   - [SVG]: a standalone SVG document with one rectangle per stall and a
//     <title> tooltip
//   - [JSON]: the stall list annotated with each stall's state
//
// A View knows which stalls are in the cart and which belong to the
// signed-in user, so the same hall renders differently for different users
// without touching the underlying data.
//
//	view := render.View{Cart: cartIDs, Mine: myIDs}
//	fmt.Println(render.Text(hall, view))
//	svg := render.SVG(hall, render.WithView(view), render.WithTitle("Hall 1"))
package render
