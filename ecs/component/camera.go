package component

import "github.com/milk9111/platformer/camera"

type Camera struct {
	Follow *camera.Follow
}

var CameraComponent = NewComponent[Camera]()
