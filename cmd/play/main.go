package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shocktheblock/atom/internal/audio"
	"github.com/shocktheblock/atom/internal/client"
	"github.com/shocktheblock/atom/internal/config"
	"github.com/shocktheblock/atom/internal/game"
	"github.com/shocktheblock/atom/internal/ui"
)

func main() {
	cfg := config.Load()

	variant := flag.String("variant", cfg.GameVariant, "rule set: classic or arcade")
	player := flag.String("player", cfg.PlayerName, "name to submit high scores under (empty: don't submit)")
	apiURL := flag.String("api", cfg.APIBaseURL, "score API base URL")
	tickRate := flag.Int("tick", cfg.TickRate, "simulation ticks per second")
	seed := flag.Uint64("seed", 0, "level generator seed (0: random)")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*variant, *player, *apiURL, *tickRate, *seed, *mute, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(variant, player, apiURL string, tickRate int, seed uint64, mute bool, logPath string) error {
	gameCfg, err := game.ConfigByName(variant)
	if err != nil {
		return err
	}

	// Logs would tear the terminal UI; keep them out of the way.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if !mute {
		// The game works without sound.
		if err := audio.Init(); err != nil {
			log.Printf("[AUDIO] disabled: %v", err)
		}
		defer audio.Close()
	}

	var scores *client.Client
	if player != "" {
		scores = client.NewClient(apiURL)
	}

	screen, err := ui.InitScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session := game.NewSession(gameCfg, seed)
	renderer := ui.NewRenderer(screen, gameCfg)
	controls := ui.NewControls(gameCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var pending sync.WaitGroup
	best := 0

	inputs := make(chan game.Input, 16)
	loop := game.NewLoop(session, tickRate, inputs)
	loop.OnFrame = func(snap game.Snapshot, events []game.Event) {
		audio.Play(events)
		for _, e := range events {
			if e.Type != game.EventGameOver {
				continue
			}
			best = max(best, e.Score)
			if scores == nil {
				continue
			}
			done := scores.SubmitAsync(client.Submission{
				PlayerName:   player,
				Score:        e.Score,
				LevelReached: e.Level,
				Variant:      gameCfg.Name,
			})
			pending.Add(1)
			go func() {
				defer pending.Done()
				<-done
			}()
		}
		renderer.Render(session)
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ui.IsQuitKey(ev.Key(), ev.Rune()) {
					cancel()
					return
				}
				in, ok := controls.Handle(ev.Key(), ev.Rune(), session.Snapshot())
				if !ok {
					continue
				}
				select {
				case inputs <- in:
				case <-ctx.Done():
					return
				}
			case *tcell.EventResize:
				renderer.Resize()
			}
		}
	}()

	renderer.Render(session)
	runErr := loop.Run(ctx)
	screen.Fini()

	best = max(best, session.Score())
	fmt.Printf("Final score: %d (level %d, best this run %d)\n", session.Score(), session.Level(), best)

	waited := make(chan struct{})
	go func() {
		pending.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		fmt.Println("Score submission still pending; giving up.")
	}

	if scores != nil {
		lctx, lcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer lcancel()
		if rows, err := scores.Leaderboard(lctx); err == nil {
			fmt.Println("Top scores:")
			for i, r := range rows {
				fmt.Printf("%2d. %-20s %6d  (level %d)\n", i+1, r.PlayerName, r.Score, r.LevelReached)
			}
		}
	}

	if runErr != nil && runErr != context.Canceled {
		return runErr
	}
	return nil
}
