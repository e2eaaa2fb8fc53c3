// Package strata is a minimal terminal-UI runtime. It owns the terminal
// device, maintains a z-ordered tree of screen components, dispatches
// keyboard, mouse, and resize events with ancestor bubbling, and flushes
// a virtual screen buffer to the real terminal by re-emitting only the
// lines that changed.
//
// An application builds a tree of Components, installs it with SetRoot,
// and drives a plain loop:
//
//	rt, err := strata.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Close()
//
//	root := strata.NewComponent("root",
//		strata.OnRender(func(c *strata.Component, scr strata.Screen) {
//			strata.DrawText(scr, 0, 0, vt.Style{}, "hello")
//		}),
//		strata.OnKeypress(func(c *strata.Component, ev strata.KeyEvent) bool {
//			rt.Stop()
//			return true
//		}),
//	)
//	if err := rt.SetRoot(root); err != nil {
//		log.Fatal(err)
//	}
//
//	for {
//		if err := rt.Render(); err != nil {
//			log.Fatal(err)
//		}
//		ev, err := rt.Next()
//		if err != nil {
//			log.Fatal(err)
//		}
//		if _, done := ev.(strata.EndEvent); done {
//			return
//		}
//	}
//
// Rendering is indirect: render handlers write escape-encoded text into
// the shared virtual screen (package vt), and the runtime diffs its
// dirty lines against the terminal. Overlapping components stack in the
// order they were attached; Raise moves one to the top, and pointer
// events go to the topmost component under the cursor.
package strata
