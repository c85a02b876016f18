// Package ecs provides ECS adapters for morph scenes.
//
// [NewDonburiStore] bridges scene events (view changed, content changed,
// camera interaction start and end) into a [Donburi] world as typed events.
// Subscribe to [ViewEventType] in your ECS systems to receive them.
//
// [PoseSync] mirrors each region's animated pose onto an entity carrying the
// [RegionPose] component, so ECS systems can read shapes and labels without
// touching the scene.
//
// Usage:
//
//	scene.SetEventSink(ecs.NewDonburiStore(world))
//	sync := ecs.NewPoseSync(world)
//	scene.SetUpdateFunc(func() error {
//		sync.Sync(scene.Frame())
//		return nil
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
