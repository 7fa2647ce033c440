// Package crt simulates the look of a CRT display on a still image.
//
// # Overview
//
// The input raster is treated as a video signal. Each scanline is
// band-limited as an analog signal of finite bandwidth would be, then drawn
// by an electron beam whose spot widens with brightness. The phosphor mask
// and the glow of light diffusing through the faceplate (bloom) are added
// last.
//
// # Quick Start
//
//	r, err := crt.NewRenderer(crt.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	out, err := r.RenderImage(src)
//
// # Pipeline
//
// Render runs these stages in order:
//   - working space: encoded bytes to a gamma signal (or YIQ)
//   - band-limit: each row resampled to Params.Samples columns through a
//     raised-cosine low-pass
//   - to linear light
//   - spot: OutputWidth x OutputHeight, one beam footprint per scanline
//   - mask (when MaskAmount > 0)
//   - bloom (when BlurAmount > 0)
//   - linear to sRGB bytes
//
// Every stage is a parallel map over output rows. Results do not depend on
// the number of workers.
//
// # Logging
//
// Logging is off by default. See SetLogger and WithLogger.
package crt

// Version is the current version of the module.
const Version = "0.1.0"
