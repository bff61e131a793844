package wgpurender

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the GLFW window the model is presented in. GLFW must be driven
// from the main OS thread.
type Window struct {
	glfw   *glfw.Window
	Width  int
	Height int
	title  string
}

func NewWindow(width int, height int, title string) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu drives the surface, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	return &Window{
		glfw:   win,
		Width:  width,
		Height: height,
		title:  title,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.glfw.ShouldClose()
}

// SetTitle updates the window title if it changed.
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.glfw.SetTitle(title)
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}
