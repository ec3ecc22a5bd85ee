package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/groveworks/moodscape/common"
	"github.com/groveworks/moodscape/engine/scene"
)

// particleVertexStride is the byte size of one packed particle: position (3),
// color (3), size (1), opacity (1) as float32.
const particleVertexStride = 8 * 4

// pipelineKey selects one of the four particle pipeline variants.
type pipelineKey struct {
	additive   bool
	depthWrite bool
}

// wgpuRenderer is the WebGPU implementation of the Renderer interface.
//
// Frame structure: particles render into an offscreen scene target, the
// bloom chain extracts and blurs the bright pixels, and the composite pass
// adds the blurred result onto the scene and writes the swapchain.
type wgpuRenderer struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	width, height uint32

	// Offscreen targets, rebuilt on resize.
	sceneTexture  *wgpu.Texture
	sceneView     *wgpu.TextureView
	brightTexture *wgpu.Texture
	brightView    *wgpu.TextureView
	pingTexture   *wgpu.Texture
	pingView      *wgpu.TextureView
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView

	cameraBuffer *wgpu.Buffer
	bloomBuffer  *wgpu.Buffer
	blurHBuffer  *wgpu.Buffer
	blurVBuffer  *wgpu.Buffer

	sampler *wgpu.Sampler

	particleLayout0    *wgpu.BindGroupLayout // camera uniform
	particleLayout1    *wgpu.BindGroupLayout // sprite texture + sampler
	cameraBindGroup    *wgpu.BindGroup
	particlePipelines  map[pipelineKey]*wgpu.RenderPipeline
	postLayout         *wgpu.BindGroupLayout // texture + sampler + params
	compositeLayout    *wgpu.BindGroupLayout // scene + bloom + sampler + params
	extractPipeline    *wgpu.RenderPipeline
	blurPipeline       *wgpu.RenderPipeline
	compositePipeline  *wgpu.RenderPipeline
	extractBindGroup   *wgpu.BindGroup
	blurHBindGroup     *wgpu.BindGroup
	blurVBindGroup     *wgpu.BindGroup
	compositeBindGroup *wgpu.BindGroup

	bloomRadius float32

	clouds []*particleCloud
}

var _ Renderer = &wgpuRenderer{}

// NewWebGPURenderer creates the WebGPU renderer over a window surface.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - width, height: the initial drawable size in pixels
//
// Returns:
//   - Renderer: the live renderer
//   - error: adapter, device, or pipeline creation failure
func NewWebGPURenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height uint32) (Renderer, error) {
	runtime.LockOSThread()

	r := &wgpuRenderer{
		instance:          wgpu.CreateInstance(nil),
		particlePipelines: make(map[pipelineKey]*wgpu.RenderPipeline),
		bloomRadius:       1,
	}
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Moodscape Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]
	r.alphaMode = capabilities.AlphaModes[0]

	if err := r.createSharedResources(); err != nil {
		return nil, err
	}
	if err := r.createPipelines(); err != nil {
		return nil, err
	}

	r.configure(width, height)

	return r, nil
}

// createSharedResources builds the uniform buffers and the shared sampler.
func (r *wgpuRenderer) createSharedResources() error {
	var err error

	// View + projection, 32 floats.
	r.cameraBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform",
		Size:  32 * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	// threshold, strength, radius, pad.
	r.bloomBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Bloom Params",
		Size:  4 * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	// direction.xy, radius, pad.
	for _, slot := range []**wgpu.Buffer{&r.blurHBuffer, &r.blurVBuffer} {
		*slot, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Blur Params",
			Size:  4 * 4,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shared Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	return err
}

// createPipelines builds the four particle pipeline variants and the three
// post-process pipelines.
func (r *wgpuRenderer) createPipelines() error {
	var err error

	r.particleLayout0, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Particle Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return err
	}

	r.particleLayout1, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Particle Sprite Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return err
	}

	r.cameraBindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: r.particleLayout0,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	particleModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Particle Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: particleShaderWGSL},
	})
	if err != nil {
		return err
	}

	particlePipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Particle Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.particleLayout0, r.particleLayout1},
	})
	if err != nil {
		return err
	}

	additiveBlend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
		},
	}
	normalBlend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		},
	}

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: particleVertexStride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32, Offset: 28, ShaderLocation: 3},
		},
	}

	for _, key := range []pipelineKey{
		{additive: true, depthWrite: false},
		{additive: true, depthWrite: true},
		{additive: false, depthWrite: false},
		{additive: false, depthWrite: true},
	} {
		blend := normalBlend
		if key.additive {
			blend = additiveBlend
		}
		pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  "Particle Pipeline",
			Layout: particlePipelineLayout,
			Vertex: wgpu.VertexState{
				Module:     particleModule,
				EntryPoint: "vs_main",
				Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
			},
			Fragment: &wgpu.FragmentState{
				Module:     particleModule,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format:    r.surfaceFormat,
						Blend:     blend,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology: wgpu.PrimitiveTopologyTriangleList,
				CullMode: wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: key.depthWrite,
				DepthCompare:      wgpu.CompareFunctionLess,
				StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
				StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			},
		})
		if err != nil {
			return err
		}
		r.particlePipelines[key] = pipeline
	}

	r.postLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Post Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return err
	}

	r.compositeLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Composite Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return err
	}

	r.extractPipeline, err = r.createPostPipeline("Bright Extract", brightExtractWGSL, r.postLayout)
	if err != nil {
		return err
	}
	r.blurPipeline, err = r.createPostPipeline("Gaussian Blur", blurWGSL, r.postLayout)
	if err != nil {
		return err
	}
	r.compositePipeline, err = r.createPostPipeline("Bloom Composite", compositeWGSL, r.compositeLayout)
	return err
}

// createPostPipeline builds one fullscreen-triangle post-process pipeline.
func (r *wgpuRenderer) createPostPipeline(label, source string, layout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return nil, err
	}

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: r.surfaceFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
			CullMode: wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
}

// configure sets the surface size and rebuilds the offscreen targets and
// their bind groups. Callers hold r.mu or run during init.
func (r *wgpuRenderer) configure(width, height uint32) {
	r.width = width
	r.height = height

	r.surface.Configure(r.adapter, r.device, r.surfaceConfiguration(width, height))

	r.releaseTargets()

	r.sceneTexture, r.sceneView = r.createTarget("Scene", width, height, r.surfaceFormat)
	r.brightTexture, r.brightView = r.createTarget("Bright", width, height, r.surfaceFormat)
	r.pingTexture, r.pingView = r.createTarget("Blur Ping", width, height, r.surfaceFormat)

	depth, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTexture = depth
	r.depthView, err = depth.CreateView(nil)
	if err != nil {
		panic(err)
	}

	r.rebuildPostBindGroups()
}

// surfaceConfiguration builds the swapchain configuration from the surface
// capabilities captured at startup. The alpha mode comes from the capability
// list; a fixed mode is not supported on every platform.
func (r *wgpuRenderer) surfaceConfiguration(width, height uint32) *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   r.alphaMode,
	}
}

// createTarget allocates one offscreen render target and its view.
func (r *wgpuRenderer) createTarget(label string, width, height uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView) {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label + " Target",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return tex, view
}

// rebuildPostBindGroups recreates the post-process bind groups against the
// current offscreen views.
func (r *wgpuRenderer) rebuildPostBindGroups() {
	mustBindGroup := func(label string, layout *wgpu.BindGroupLayout, entries []wgpu.BindGroupEntry) *wgpu.BindGroup {
		bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   label,
			Layout:  layout,
			Entries: entries,
		})
		if err != nil {
			panic(err)
		}
		return bg
	}

	r.extractBindGroup = mustBindGroup("Extract Bind Group", r.postLayout, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: r.sceneView},
		{Binding: 1, Sampler: r.sampler},
		{Binding: 2, Buffer: r.bloomBuffer, Size: wgpu.WholeSize},
	})
	r.blurHBindGroup = mustBindGroup("Blur H Bind Group", r.postLayout, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: r.brightView},
		{Binding: 1, Sampler: r.sampler},
		{Binding: 2, Buffer: r.blurHBuffer, Size: wgpu.WholeSize},
	})
	r.blurVBindGroup = mustBindGroup("Blur V Bind Group", r.postLayout, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: r.pingView},
		{Binding: 1, Sampler: r.sampler},
		{Binding: 2, Buffer: r.blurVBuffer, Size: wgpu.WholeSize},
	})
	r.compositeBindGroup = mustBindGroup("Composite Bind Group", r.compositeLayout, []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: r.sceneView},
		{Binding: 1, TextureView: r.brightView},
		{Binding: 2, Sampler: r.sampler},
		{Binding: 3, Buffer: r.bloomBuffer, Size: wgpu.WholeSize},
	})
}

// releaseTargets frees the offscreen textures ahead of a rebuild.
func (r *wgpuRenderer) releaseTargets() {
	for _, tex := range []*wgpu.Texture{r.sceneTexture, r.brightTexture, r.pingTexture, r.depthTexture} {
		if tex != nil {
			tex.Release()
		}
	}
	r.sceneTexture, r.brightTexture, r.pingTexture, r.depthTexture = nil, nil, nil, nil
}

func (r *wgpuRenderer) CreateParticleCloud(desc ParticleCloudDesc) (ParticleCloud, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: desc.Name + " Vertex Buffer",
		Size:  uint64(desc.Count) * particleVertexStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("particle buffer: %w", err)
	}

	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Name + " Sprite",
		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Size: wgpu.Extent3D{
			Width:              uint32(desc.TextureSize),
			Height:             uint32(desc.TextureSize),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		buffer.Release()
		return nil, fmt.Errorf("sprite texture: %w", err)
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		desc.TexturePixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(desc.TextureSize) * 4,
			RowsPerImage: uint32(desc.TextureSize),
		},
		&wgpu.Extent3D{
			Width:              uint32(desc.TextureSize),
			Height:             uint32(desc.TextureSize),
			DepthOrArrayLayers: 1,
		},
	)

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		buffer.Release()
		return nil, fmt.Errorf("sprite view: %w", err)
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  desc.Name + " Bind Group",
		Layout: r.particleLayout1,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		view.Release()
		texture.Release()
		buffer.Release()
		return nil, fmt.Errorf("sprite bind group: %w", err)
	}

	cloud := &particleCloud{
		renderer:  r,
		buffer:    buffer,
		texture:   texture,
		view:      view,
		bindGroup: bindGroup,
		count:     uint32(desc.Count),
		key:       pipelineKey{additive: desc.Additive, depthWrite: desc.DepthWrite},
	}
	r.clouds = append(r.clouds, cloud)
	return cloud, nil
}

func (r *wgpuRenderer) SetBloom(threshold, strength, radius float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bloomRadius = radius
	r.queue.WriteBuffer(r.bloomBuffer, 0, common.SliceToBytes([]float32{threshold, strength, radius, 0}))
	r.queue.WriteBuffer(r.blurHBuffer, 0, common.SliceToBytes([]float32{1, 0, radius, 0}))
	r.queue.WriteBuffer(r.blurVBuffer, 0, common.SliceToBytes([]float32{0, 1, radius, 0}))
}

func (r *wgpuRenderer) RenderFrame(sc scene.Scene, view, projection [16]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	camera := make([]float32, 0, 32)
	camera = append(camera, view[:]...)
	camera = append(camera, projection[:]...)
	r.queue.WriteBuffer(r.cameraBuffer, 0, common.SliceToBytes(camera))

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface: %w", err)
	}
	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	defer func() {
		surfaceView.Release()
		surfaceTexture.Release()
	}()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	background := sc.Background()

	// Pass 1: particles into the offscreen scene target.
	scenePass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    r.sceneView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(background.R),
					G: float64(background.G),
					B: float64(background.B),
					A: 1,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1,
		},
	})
	for _, cloud := range r.clouds {
		scenePass.SetPipeline(r.particlePipelines[cloud.key])
		scenePass.SetBindGroup(0, r.cameraBindGroup, nil)
		scenePass.SetBindGroup(1, cloud.bindGroup, nil)
		scenePass.SetVertexBuffer(0, cloud.buffer, 0, wgpu.WholeSize)
		scenePass.Draw(6, cloud.count, 0, 0)
	}
	scenePass.End()

	// Passes 2-4: bloom chain.
	r.fullscreenPass(encoder, r.brightView, r.extractPipeline, r.extractBindGroup)
	r.fullscreenPass(encoder, r.pingView, r.blurPipeline, r.blurHBindGroup)
	r.fullscreenPass(encoder, r.brightView, r.blurPipeline, r.blurVBindGroup)

	// Pass 5: composite to the swapchain.
	r.fullscreenPass(encoder, surfaceView, r.compositePipeline, r.compositeBindGroup)

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	r.queue.Submit(commandBuffer)
	commandBuffer.Release()

	r.surface.Present()
	return nil
}

// fullscreenPass encodes one fullscreen-triangle pass into target.
func (r *wgpuRenderer) fullscreenPass(encoder *wgpu.CommandEncoder, target *wgpu.TextureView, pipeline *wgpu.RenderPipeline, bindGroup *wgpu.BindGroup) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{A: 1},
			},
		},
	})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()
}

func (r *wgpuRenderer) Resize(width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == 0 || height == 0 {
		return
	}
	r.configure(width, height)
}

func (r *wgpuRenderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cloud := range r.clouds {
		cloud.release()
	}
	r.clouds = nil

	r.releaseTargets()
	if r.device != nil {
		r.device.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
}

// particleCloud is the WebGPU implementation of ParticleCloud.
type particleCloud struct {
	renderer  *wgpuRenderer
	buffer    *wgpu.Buffer
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
	count     uint32
	key       pipelineKey
	released  bool
}

var _ ParticleCloud = &particleCloud{}

func (c *particleCloud) Upload(vertices []float32) {
	if c.released {
		return
	}
	c.renderer.queue.WriteBuffer(c.buffer, 0, common.SliceToBytes(vertices))
}

func (c *particleCloud) Release() {
	r := c.renderer
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cloud := range r.clouds {
		if cloud == c {
			r.clouds = append(r.clouds[:i], r.clouds[i+1:]...)
			break
		}
	}
	c.release()
}

// release frees GPU resources. Callers hold the renderer mutex.
func (c *particleCloud) release() {
	if c.released {
		return
	}
	c.released = true
	c.bindGroup.Release()
	c.view.Release()
	c.texture.Release()
	c.buffer.Release()
}
