package component

import "github.com/milk9111/platformer/levels"

// CollisionLayer declares a collision category and mask so the physics
// system can filter contacts and ground queries between groups.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system treats it as the player layer.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity collides with. If zero,
	// the physics system treats it as all-bits set.
	Mask uint32 `yaml:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

const (
	LayerGround   = levels.LayerGround
	LayerPlatform = levels.LayerPlatform
	LayerPlayer   = levels.LayerPlayer
)
