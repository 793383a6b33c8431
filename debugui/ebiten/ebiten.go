// Package ebiten provides Dear ImGui backend integration for the Ebiten game
// engine. Use this to host the debugui windows inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Store it as an ecs.Singleton so systems can begin/end the ImGui frame
// around scene updates.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
