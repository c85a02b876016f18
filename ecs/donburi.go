// Package ecs provides ECS adapters for morph.
package ecs

import (
	"github.com/phanxgames/morph"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewEventType is the Donburi event type for morph scene events.
// Subscribe to this in your ECS systems to react to view, content and
// camera hand-off changes.
var ViewEventType = events.NewEventType[morph.ViewEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Scene events are published to ViewEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) morph.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitViewEvent(event morph.ViewEvent) {
	ViewEventType.Publish(s.world, event)
}

// RegionPose is the per-entity mirror of a region's frame state.
var RegionPose = donburi.NewComponentType[morph.RegionFrame]()

// PoseSync mirrors every region of a morph.Frame onto one Donburi entity per
// region identity. Entities are created the first time an identity appears
// and are never destroyed, matching the lifetime of region controllers.
type PoseSync struct {
	world    donburi.World
	entities map[int]donburi.Entity
}

// NewPoseSync returns a PoseSync writing into world.
func NewPoseSync(world donburi.World) *PoseSync {
	return &PoseSync{world: world, entities: make(map[int]donburi.Entity)}
}

// Sync writes frame's regions into the world.
func (p *PoseSync) Sync(frame morph.Frame) {
	for _, rf := range frame.Regions {
		e, ok := p.entities[rf.ID]
		if !ok || !p.world.Valid(e) {
			e = p.world.Create(RegionPose)
			p.entities[rf.ID] = e
		}
		RegionPose.SetValue(p.world.Entry(e), rf)
	}
}

// Entity returns the entity mirroring a region identity.
func (p *PoseSync) Entity(id int) (donburi.Entity, bool) {
	e, ok := p.entities[id]
	return e, ok
}
