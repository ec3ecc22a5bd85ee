package renderer

// WGSL sources for the particle and post-process pipelines. Embedded as
// strings so the binary carries no shader assets.

// particleShaderWGSL draws particle clouds as camera-facing billboards. Each
// instance carries position, color, size, and opacity; the six quad corners
// are generated from the vertex index and expanded in view space.
const particleShaderWGSL = `
struct Camera {
    view: mat4x4<f32>,
    projection: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> camera: Camera;
@group(1) @binding(0) var spriteTexture: texture_2d<f32>;
@group(1) @binding(1) var spriteSampler: sampler;

struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec3<f32>,
    @location(2) opacity: f32,
};

@vertex
fn vs_main(
    @builtin(vertex_index) vertexIndex: u32,
    @location(0) instancePos: vec3<f32>,
    @location(1) instanceColor: vec3<f32>,
    @location(2) instanceSize: f32,
    @location(3) instanceOpacity: f32,
) -> VertexOut {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(-0.5, -0.5),
        vec2<f32>( 0.5, -0.5),
        vec2<f32>( 0.5,  0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>( 0.5,  0.5),
        vec2<f32>(-0.5,  0.5),
    );
    let corner = corners[vertexIndex];
    var viewPos = camera.view * vec4<f32>(instancePos, 1.0);
    viewPos = vec4<f32>(viewPos.xy + corner * instanceSize, viewPos.zw);

    var out: VertexOut;
    out.position = camera.projection * viewPos;
    out.uv = corner + vec2<f32>(0.5, 0.5);
    out.color = instanceColor;
    out.opacity = instanceOpacity;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let tex = textureSample(spriteTexture, spriteSampler, in.uv);
    return vec4<f32>(in.color * tex.rgb, tex.a * in.opacity);
}
`

// fullscreenVertexWGSL is the shared fullscreen-triangle vertex stage for
// every post-process pass.
const fullscreenVertexWGSL = `
struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) vertexIndex: u32) -> VertexOut {
    var out: VertexOut;
    let x = f32(i32(vertexIndex & 1u) * 4 - 1);
    let y = f32(i32(vertexIndex >> 1u) * 4 - 1);
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    out.uv = vec2<f32>((x + 1.0) * 0.5, (1.0 - y) * 0.5);
    return out;
}
`

// brightExtractWGSL keeps pixels whose luminance exceeds the bloom threshold
// and blacks out the rest.
const brightExtractWGSL = fullscreenVertexWGSL + `
struct BloomParams {
    threshold: f32,
    strength: f32,
    radius: f32,
    _pad: f32,
};

@group(0) @binding(0) var sceneTexture: texture_2d<f32>;
@group(0) @binding(1) var sceneSampler: sampler;
@group(0) @binding(2) var<uniform> params: BloomParams;

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let color = textureSample(sceneTexture, sceneSampler, in.uv).rgb;
    let luma = dot(color, vec3<f32>(0.2126, 0.7152, 0.0722));
    if (luma < params.threshold) {
        return vec4<f32>(0.0, 0.0, 0.0, 1.0);
    }
    return vec4<f32>(color, 1.0);
}
`

// blurWGSL is a separable 9-tap gaussian. The direction uniform selects the
// horizontal or vertical pass; radius scales the tap spacing.
const blurWGSL = fullscreenVertexWGSL + `
struct BlurParams {
    direction: vec2<f32>,
    radius: f32,
    _pad: f32,
};

@group(0) @binding(0) var sourceTexture: texture_2d<f32>;
@group(0) @binding(1) var sourceSampler: sampler;
@group(0) @binding(2) var<uniform> params: BlurParams;

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    var weights = array<f32, 5>(0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);
    let texel = params.direction * params.radius / vec2<f32>(textureDimensions(sourceTexture));
    var result = textureSample(sourceTexture, sourceSampler, in.uv).rgb * weights[0];
    for (var i = 1; i < 5; i = i + 1) {
        let offset = texel * f32(i);
        result = result + textureSample(sourceTexture, sourceSampler, in.uv + offset).rgb * weights[i];
        result = result + textureSample(sourceTexture, sourceSampler, in.uv - offset).rgb * weights[i];
    }
    return vec4<f32>(result, 1.0);
}
`

// compositeWGSL adds the blurred bright texture onto the scene, scaled by
// bloom strength.
const compositeWGSL = fullscreenVertexWGSL + `
struct BloomParams {
    threshold: f32,
    strength: f32,
    radius: f32,
    _pad: f32,
};

@group(0) @binding(0) var sceneTexture: texture_2d<f32>;
@group(0) @binding(1) var bloomTexture: texture_2d<f32>;
@group(0) @binding(2) var compositeSampler: sampler;
@group(0) @binding(3) var<uniform> params: BloomParams;

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let scene = textureSample(sceneTexture, compositeSampler, in.uv).rgb;
    let bloom = textureSample(bloomTexture, compositeSampler, in.uv).rgb;
    return vec4<f32>(scene + bloom * params.strength, 1.0);
}
`
