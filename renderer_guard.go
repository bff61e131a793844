package skinplay

import (
	"fmt"
)

// RendererTag records which render driver owns the surface and how many joints
// its skinning program binds.
type RendererTag struct {
	Name   string
	Joints int
}

// claimRenderer registers name as the app's only renderer. The frame delta the
// renderer consumes comes from the Time resource, so TimeModule must already
// be installed.
func claimRenderer(app *App, name string, joints int) {
	if app == nil {
		panic("claimRenderer: app is nil")
	}
	if tag, ok := GetResource[RendererTag](app); ok {
		msg := fmt.Sprintf("renderer %s already installed (%d joints); cannot install %s", tag.Name, tag.Joints, name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
	if _, ok := GetResource[Time](app); !ok {
		panic(fmt.Sprintf("renderer %s needs the Time resource; install TimeModule first", name))
	}
	app.addResources(&RendererTag{Name: name, Joints: joints})
}
