package borders

// ToClipSpace converts a device-pixel coordinate to normalized clip space
// for the given viewport. The device origin is the top-left corner; clip
// space Y grows upwards, so (0, 0) maps to (-1, 1) and (width, height)
// maps to (1, -1).
func ToClipSpace(x, y float64, vp ViewportSize) (cx, cy float32) {
	cx = float32(-1 + 2*x/float64(vp.Width))
	cy = float32(1 - 2*y/float64(vp.Height))
	return cx, cy
}
