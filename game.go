package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
)

var backgroundColor = color.RGBA{R: 0x18, G: 0x1c, B: 0x2a, A: 0xff}

type Game struct {
	frames int

	session   *session
	renderers ecs.Renderers
	watcher   *prefabs.Watcher
	debug     bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	s, err := newSession(opts, nil)
	if err != nil {
		return nil, err
	}

	g := &Game{session: s, debug: opts.Debug}
	g.renderers = ecs.Renderers{
		system.NewLevelRenderer(s.level),
		system.NewSpriteRenderer(),
	}
	if opts.Debug {
		g.renderers = append(g.renderers,
			system.NewPhysicsDebugRenderer(s.physics.Space()),
			system.NewGroundGizmoRenderer(),
			system.NewStateOverlayRenderer(),
		)
	}
	g.pauseUI = NewPauseUI(g)

	watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
	if err != nil {
		log.Warn("prefab hot reload disabled", "dir", prefabs.Dir, "error", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.pollReload()

	if g.paused {
		g.pauseUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.paused = false
		}
		return nil
	}

	g.session.sample()
	if g.session.pauseRequested() {
		g.paused = true
		return nil
	}
	g.session.advance(1.0 / common.TPS)
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.session.applyChange(change); err != nil {
				log.Error("reload failed, keeping previous values", "file", change.Name, "error", err)
				continue
			}
			log.Info("reloaded", "file", change.Name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Warn("prefab watcher", "error", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w := g.session.world
	view := system.CameraView(w, g.session.spec.PixelsPerUnit, common.BaseWidth, common.BaseHeight)
	g.renderers.Draw(w, screen, view)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, common.BaseHeight-20)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
