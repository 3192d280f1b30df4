// Package main provides the playerd entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/vara-s830/playerd/internal/app/audiosession"
	"github.com/vara-s830/playerd/internal/app/notification"
	"github.com/vara-s830/playerd/internal/app/player"
	"github.com/vara-s830/playerd/internal/domain/playlist"
	"github.com/vara-s830/playerd/internal/infra/config"
	"github.com/vara-s830/playerd/internal/infra/engine"
	"github.com/vara-s830/playerd/internal/infra/library"
	"github.com/vara-s830/playerd/internal/infra/logger"
)

var (
	app        = kingpin.New("playerd", "local music player daemon")
	configPath = app.Flag("config", "Path to config file").Default("config/player.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// scan command
	scanCmd = app.Command("scan", "List the library tracks and exit")
)

func init() {
	// start command (default)
	app.Command("start", "Start the player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	// Command-line flags override the config file
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if command == scanCmd.FullCommand() {
		if err := scan(cfg); err != nil {
			zlog.Error().Msgf("scan error: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("player error: %v", err)
		os.Exit(1)
	}
}

// scan prints the library contents without starting playback.
func scan(cfg *config.Config) error {
	pl, err := library.Load(cfg.Library.Dir)
	if err != nil {
		return err
	}
	printPlaylist(&pl)
	return nil
}

// run wires the engine, the notification manager, and the playback store,
// then serves an interactive command loop until quit or a signal.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := engine.New(engine.Config{
		Type:     cfg.Engine.Type,
		Settings: cfg.Engine.Settings,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	notifier := notification.NewManager()
	store := player.NewStore(eng, notifier, player.Config{
		TickInterval: time.Duration(cfg.Player.TickIntervalMs) * time.Millisecond,
	})
	defer store.Close()

	// Log every engine failure surfaced to observers.
	subID := notifier.Subscribe(notification.StreamFunc(func(u notification.Update) error {
		if u.Err != "" {
			fmt.Printf("playback failed: %s\n", u.Err)
		}
		zlog.Debug().Msgf("state #%d: status=%s track=%s elapsed=%s",
			u.SequenceNo, u.State.Status, u.State.Title(), u.State.Elapsed)
		return nil
	}))
	defer notifier.Unsubscribe(subID)

	pl, err := library.Load(cfg.Library.Dir)
	if err != nil {
		return err
	}
	store.SetPlaylist(pl)

	// Simulated audio session source: the command loop feeds the same
	// channel a platform notification source would.
	events := make(chan audiosession.Event, 4)
	go audiosession.Bind(ctx, events, store)

	fmt.Printf("loaded %d tracks from %s, type 'help' for commands\n", pl.Len(), cfg.Library.Dir)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			zlog.Info().Msg("received shutdown signal")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleCommand(line, store, &pl, events); quit {
				return nil
			}
		}
	}
}

// handleCommand executes one interactive command. Returns true on quit.
func handleCommand(line string, store *player.Store, pl *playlist.Playlist, events chan<- audiosession.Event) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "help":
		fmt.Println("commands: list, play <n>, pause, resume, stop, status,")
		fmt.Println("          interrupt, endinterrupt [resume], unplug, replug, quit")

	case "list":
		printPlaylist(pl)

	case "play":
		if len(fields) < 2 {
			fmt.Println("usage: play <n>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("usage: play <n>")
			return false
		}
		if err := store.Play(n - 1); err != nil {
			fmt.Printf("cannot play track %d: %v\n", n, err)
		}

	case "pause":
		store.Pause()

	case "resume":
		store.Resume()

	case "stop":
		store.Stop()

	case "status":
		printStatus(store.Snapshot())

	case "interrupt":
		events <- audiosession.Event{Kind: audiosession.InterruptionBegan}

	case "endinterrupt":
		resume := len(fields) > 1 && fields[1] == "resume"
		events <- audiosession.Event{Kind: audiosession.InterruptionEnded, ShouldResume: resume}

	case "unplug":
		events <- audiosession.Event{Kind: audiosession.RouteChanged, RouteReason: audiosession.RouteDeviceUnavailable}

	case "replug":
		events <- audiosession.Event{Kind: audiosession.RouteChanged, RouteReason: audiosession.RouteNewDeviceAvailable}

	case "quit", "exit":
		return true

	default:
		fmt.Printf("unknown command: %s\n", fields[0])
	}
	return false
}

func printPlaylist(pl *playlist.Playlist) {
	if pl.Len() == 0 {
		fmt.Println("library is empty")
		return
	}
	for i, title := range pl.Titles() {
		fmt.Printf("%3d. %s\n", i+1, title)
	}
}

func printStatus(snap player.Snapshot) {
	if !snap.HasTrack() {
		fmt.Printf("%s (%d tracks)\n", snap.Status, snap.PlaylistLen)
		return
	}
	fmt.Printf("%s: %s [%s / %s] %.0f%%\n",
		snap.Status,
		snap.Track.DisplayName(),
		snap.Elapsed.Round(time.Second),
		snap.Track.Duration.Round(time.Second),
		snap.Progress()*100,
	)
}
