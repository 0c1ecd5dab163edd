package m2

import "fmt"

// LITE layout:
//
//	count   u32
//	records count x:
//	  type             u16   (0 = directional, 1 = point)
//	  bone             i16   (-1 = unattached)
//	  position         C3Vector
//	  ambientColor     C3Vector
//	  ambientIntensity f32
//	  diffuseColor     C3Vector
//	  diffuseIntensity f32
//	  attenuationStart f32
//	  attenuationEnd   f32
//
// Record size 56, all versions.
//
// CAMS layout:
//
//	count   u32
//	records count x:
//	  type      u32
//	  fov       u32 fixed16.16 before Cataclysm, f32 from Cataclysm on
//	  farClip   f32
//	  nearClip  f32
//	  position  C3Vector
//	  target    C3Vector
//
// Record size 40, all versions. Downgrading a camera checks that fov fits in
// fixed16.16 (0 <= fov < 65536) and quantizes it onto the fixed-point grid;
// out-of-range values fail with ErrFieldOverflow.

type Light struct {
	Type             uint16
	Bone             int16
	Position         C3Vector
	AmbientColor     C3Vector
	AmbientIntensity float32
	DiffuseColor     C3Vector
	DiffuseIntensity float32
	AttenuationStart float32
	AttenuationEnd   float32
}

type LightChunk struct {
	Lights []Light
}

func (c *LightChunk) ChunkTag() Tag { return TagLights }

type Camera struct {
	Type     uint32
	FOV      float32
	FarClip  float32
	NearClip float32
	Position C3Vector
	Target   C3Vector
}

type CameraChunk struct {
	Cameras []Camera
}

func (c *CameraChunk) ChunkTag() Tag { return TagCameras }

func init() {
	register(TagLights, codec{
		introduced: Classic,
		decode:     decodeLights,
		encode:     encodeLights,
	})
	register(TagCameras, codec{
		introduced: Classic,
		decode:     decodeCameras,
		encode:     encodeCameras,
		transform:  transformCameras,
	})
}

func decodeLights(r *reader, v Version) (Chunk, error) {
	n := r.count(56)
	c := &LightChunk{Lights: make([]Light, n)}
	for i := range c.Lights {
		l := &c.Lights[i]
		l.Type = r.u16()
		l.Bone = r.i16()
		l.Position = r.vec3()
		l.AmbientColor = r.vec3()
		l.AmbientIntensity = r.f32()
		l.DiffuseColor = r.vec3()
		l.DiffuseIntensity = r.f32()
		l.AttenuationStart = r.f32()
		l.AttenuationEnd = r.f32()
	}
	return c, nil
}

func encodeLights(w *writer, c Chunk, v Version) {
	lights := c.(*LightChunk).Lights
	w.u32(uint32(len(lights)))
	for i := range lights {
		l := &lights[i]
		w.u16(l.Type)
		w.i16(l.Bone)
		w.vec3(l.Position)
		w.vec3(l.AmbientColor)
		w.f32(l.AmbientIntensity)
		w.vec3(l.DiffuseColor)
		w.f32(l.DiffuseIntensity)
		w.f32(l.AttenuationStart)
		w.f32(l.AttenuationEnd)
	}
}

func decodeCameras(r *reader, v Version) (Chunk, error) {
	n := r.count(40)
	c := &CameraChunk{Cameras: make([]Camera, n)}
	for i := range c.Cameras {
		cam := &c.Cameras[i]
		cam.Type = r.u32()
		if v >= Cataclysm {
			cam.FOV = r.f32()
		} else {
			cam.FOV = fixed1616ToFloat(r.u32())
		}
		cam.FarClip = r.f32()
		cam.NearClip = r.f32()
		cam.Position = r.vec3()
		cam.Target = r.vec3()
	}
	return c, nil
}

func encodeCameras(w *writer, c Chunk, v Version) {
	cams := c.(*CameraChunk).Cameras
	w.u32(uint32(len(cams)))
	for i := range cams {
		cam := &cams[i]
		w.u32(cam.Type)
		if v >= Cataclysm {
			w.f32(cam.FOV)
		} else {
			w.u32(floatToFixed1616(cam.FOV))
		}
		w.f32(cam.FarClip)
		w.f32(cam.NearClip)
		w.vec3(cam.Position)
		w.vec3(cam.Target)
	}
}

func transformCameras(c Chunk, from, to Version) (Chunk, error) {
	if to >= Cataclysm {
		return c, nil
	}
	src := c.(*CameraChunk)
	out := &CameraChunk{Cameras: make([]Camera, len(src.Cameras))}
	copy(out.Cameras, src.Cameras)
	for i := range out.Cameras {
		fov := out.Cameras[i].FOV
		if fov < 0 || fov >= 65536 {
			return c, fmt.Errorf("m2: %w: CAMS[%d] fov %g outside fixed16.16 range",
				ErrFieldOverflow, i, fov)
		}
		out.Cameras[i].FOV = fixed1616ToFloat(floatToFixed1616(fov))
	}
	return out, nil
}
