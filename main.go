package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

const version = "0.1.0"

type versionCmd struct{}

type chatCmd struct {
	Video string `arg:"" help:"YouTube video URL or ID to chat about"`
}

var cli struct {
	Version versionCmd `cmd:"version" help:"Print version information"`
	Chat    chatCmd    `cmd:"" default:"withargs" help:"Chat about a YouTube video's captions"`
}

func initLogger() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("failed to get user home directory: %w", err))
	}

	logDir := filepath.Join(homeDir, ".local", "share", "tubetalk")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		panic(fmt.Errorf("failed to create log directory %s: %w", logDir, err))
	}

	// Set up lumberjack for log rotation
	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "tubetalk.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, opts)))
}

func (v versionCmd) Run() error {
	fmt.Printf("Tubetalk v%s\n", version)
	return nil
}

func (c *chatCmd) Run() error {
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using defaults due to config load failure: %v\n", err)
		def := defaultConfig()
		config = &def
	}

	videoID, err := parseVideoID(c.Video)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tc := NewTranscriptClient(videoID)
	tracks, err := tc.ListTracks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list caption tracks for %s: %w", videoID, err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("video %s has no caption tracks", videoID)
	}
	track, err := chooseTrack(tracks, config.Language, config.TranscriptPreference)
	if err != nil {
		return err
	}
	transcript, err := tc.Fetch(ctx, track)
	if err != nil {
		return fmt.Errorf("failed to fetch captions: %w", err)
	}
	slog.Info("loaded transcript", "video", videoID, "lang", track.Lang, "kind", track.Kind, "bytes", len(transcript))

	llm, err := getLLMClient(config)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	reply := newLLMReplyService(llm, videoID, transcript)

	term := NewTerminal(os.Stdin, os.Stdout)
	sess := NewSession(uuid.NewString(), videoID, term, os.Stdin, os.Stdout,
		reply, tc, config, tracks)

	if !term.IsInteractive() {
		return sess.RunPlain(os.Stdin)
	}
	return sess.Run()
}

func main() {
	initLogger()
	ctx := kong.Parse(&cli)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
