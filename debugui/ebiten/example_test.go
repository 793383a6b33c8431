package ebiten_test

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/vermeer/debugui"
	debugui_ebiten "github.com/plus3/vermeer/debugui/ebiten"
	"github.com/plus3/vermeer/ecs"
	"github.com/plus3/vermeer/gfx/backend/headless"
	"github.com/plus3/vermeer/scene"
)

// Game implements ebiten.Game and hosts a vermeer scene with the debugui
// windows rendered as an ImGui overlay.
type Game struct {
	scene        *scene.Scene
	resources    *scene.Resources
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	// Begin ImGui frame before the scene tick so deferred widget renders
	// land inside it.
	g.imguiBackend.Get().BeginFrame()

	g.scene.Update(1.0/60.0, g.resources)

	g.imguiBackend.Get().EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := ebitenbackend.NewEbitenBackend()
	imguiBackend.CreateWindow("Scene Debug UI Example", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	ecs.RegisterComponent[debugui_ebiten.ImguiBackend](registry)

	sc := scene.NewScene(registry)
	storage := sc.World()

	// Register ImGui backend as a singleton
	ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage, debugui_ebiten.ImguiBackend{
		EbitenBackend: imguiBackend,
	})

	// Spawn the stock inspection windows plus a custom widget
	debugui.SpawnDebugUI(storage)
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from the scene!")
			imgui.End()
		},
	})

	sc.Register(&debugui.ImguiSystem{})
	sc.Register(&debugui.DebugSystem{})

	res := &scene.Resources{GL: headless.NewContext()}
	sc.Setup(res)

	game := &Game{
		scene:        sc,
		resources:    res,
		imguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
