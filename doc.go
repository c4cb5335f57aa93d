// Package quadtree is the spatial index behind a retained-mode 2D scene:
// a quad-tree of movable axis-aligned items that answers region queries, keeps
// a global draw order and reports overlapping pairs every frame.
//
// # Quick start
//
//	tree := quadtree.NewTree(quadtree.Config{
//		Bounds:   quadtree.NewRect(0, 0, 4096, 4096),
//		Capacity: 8,
//	})
//
//	hero := quadtree.NewItem("hero", quadtree.RectXYWH(100, 50, 32, 32), 1)
//	if !tree.AddItem(hero) {
//		// outside the world: clamp, grow the world or drop the entity
//	}
//
// # Moving items
//
// Change an item's bounds, then call [Tree.UpdateItem]. Position callbacks
// ([Item.OnPositionChanged]) are batched and fire from [Tree.Update], which the
// frame loop calls once per frame:
//
//	hero.MoveBy(4, 0)
//	tree.UpdateItem(hero)
//	// ...
//	tree.Update()
//
// [TweenPosition] and [TweenSize] drive UpdateItem from [gween] tweens.
//
// # Drawing
//
// A selection marks the items in a region and walks them in draw order. Only
// one selection is live per tree:
//
//	view := camera.VisibleRect()
//	tree.SelectItems(&view, nil, false)
//	for it := tree.NextSelected(); it != nil; it = tree.NextSelected() {
//		draw(it)
//	}
//
// Use [Tree.CountItems] when only the number matters. The draw order sorts by
// Z layer first and then by position, as chosen by [Comparator]; the X, Y and
// Z directions can each be flipped without touching item data. Changing the
// comparator or a direction takes effect at the next [Tree.ReorderItems].
//
// # Collisions
//
// [Tree.DetectCollisions] reports every overlapping pair once to a
// [CollisionHandler]. [CollisionFuncs] adapts plain functions. The ecs
// sub-package forwards collisions into a [Donburi] world.
//
// # Debugging
//
// [Tree.SetDebugMode] validates the structure after every change and logs
// per-pass stats to stderr. [Tree.DebugDraw] outlines quadrants and items on
// an [ebiten.Image].
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package quadtree
