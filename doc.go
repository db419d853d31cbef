// Package wirescape is a configurable 3D wireframe scene for [Ebitengine]
// with a pointer-following image reveal.
//
// The scene is a wireframe dodecahedron floating over a segmented plane,
// viewed through a perspective camera with damped orbit controls and an
// optional Kage post-processing pass. Over it sits a list of hover triggers:
// entering trigger i sharpens image i out of a pixelated block next to the
// pointer and dims the other triggers; leaving fades the image back out.
//
// # Quick start
//
// [Run] loads the reveal images, opens a window and drives the frame loop:
//
//	cfg, err := wirescape.LoadConfig("config.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := wirescape.Run(ctx, cfg, wirescape.RunOptions{}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, build a [Session] yourself and call [Session.Tick] and
// [Session.Draw] from your own [ebiten.Game], or wrap it with [NewGame].
//
// # Configuration
//
// [Config] holds every tunable value. [LoadConfig] starts from
// [DefaultConfig], overlays a TOML or YAML file and then WIRESCAPE_*
// environment variables, and validates the result. [ConfigWatcher] reloads
// the file on change; [Session.Reload] applies the live-editable fields at
// the start of the next frame.
//
// # Frame loop
//
// Each [Session.Tick] drains pending reloads, reads input, updates hover
// state, advances the orbit controls and shader time, steps the reveal,
// smooths the pointer and advances tweens. Everything runs on the Ebitengine
// update goroutine. A [ManualClock] and the Inject* methods drive a session
// deterministically without a window, which is how scripted runs
// ([TestRunner]) and the tests work.
//
// [Ebitengine]: https://ebitengine.org
package wirescape
