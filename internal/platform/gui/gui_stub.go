//go:build !ebiten

package gui

// Run reports that this binary was built without window support.
func Run(Game, Options) error {
	return ErrNotBuilt
}
