package wgpurender

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// GpuState bundles the device objects shared by the importer and every model.
type GpuState struct {
	Surface       *wgpu.Surface
	Adapter       *wgpu.Adapter
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	SurfaceConfig *wgpu.SurfaceConfiguration

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

func NewGpuState(win *Window) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// wraps GLFW window into a wgpu surface
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win.glfw))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "skinplay device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(win.Width),
		Height:      uint32(win.Height),
		PresentMode: wgpu.PresentModeFifo, // vsync paces the frame loop
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	depthTexture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              surfaceConfig.Width,
			Height:             surfaceConfig.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("depth view: %w", err)
	}

	return &GpuState{
		Surface:       surface,
		Adapter:       adapter,
		Device:        device,
		Queue:         queue,
		SurfaceConfig: &surfaceConfig,
		depthTexture:  depthTexture,
		depthView:     depthView,
	}, nil
}

func (g *GpuState) Release() {
	g.depthView.Release()
	g.depthTexture.Release()
	g.Queue.Release()
	g.Device.Release()
	g.Adapter.Release()
	g.Surface.Release()
}
