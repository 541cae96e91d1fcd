package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"archcanvas/internal/canvas"
	"archcanvas/internal/config"
	"archcanvas/internal/handler"
	"archcanvas/internal/hub"
	"archcanvas/internal/loader"
	"archcanvas/internal/render"
	"archcanvas/internal/session"
	"archcanvas/internal/watcher"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the canvas host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if watch {
				cfg.Diagram.Watch = true
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "HTTP listen address (default from config, :3000)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the diagram file when it changes")
	return cmd
}

func runServe(cfg *config.Config) error {
	log.Println("Starting archcanvas server...")
	log.Println(cfg.Summary())

	diagram, err := loadDiagram(cfg)
	if err != nil {
		return err
	}
	log.Printf("Diagram loaded: %d cards, %d connections", len(diagram.Cards), len(diagram.Connections))

	// Initialize event bus and session
	eventBus := session.NewEventBus()
	sess, err := session.New(diagram, eventBus, canvas.WithPivotPolicy(cfg.PivotPolicy()))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize SSE hub
	sseHub := hub.New(
		hub.WithBufferSize(cfg.Events.BufferSize),
		hub.WithKeepAlive(cfg.Events.KeepAlive.Duration()),
	)
	go sseHub.Run(ctx)

	// Connect event bus to SSE hub
	eventChan := make(chan session.Event, cfg.Events.BufferSize)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-ctx.Done():
				return
			}
		}
	}()

	if cfg.Diagram.Watch {
		if cfg.Diagram.Path == "" {
			log.Println("Diagram watch ignored: using built-in sample")
		} else {
			go watchDiagram(ctx, cfg.Diagram.Path, sess)
		}
	}

	canvasHandler := handler.NewCanvasHandler(sess, render.Options{
		Padding:  cfg.Snapshot.Padding,
		FontSize: cfg.Snapshot.FontSize,
	})
	liveHandler := handler.NewLiveHandler(sess, cfg.Events.BufferSize,
		handler.WithPongWait(2*cfg.Events.KeepAlive.Duration()),
	)

	mux := http.NewServeMux()
	canvasHandler.Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /ws", liveHandler)

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
	}
	// Close SSE streams so Shutdown does not wait on them
	server.RegisterOnShutdown(cancel)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

func watchDiagram(ctx context.Context, path string, sess *session.Session) {
	w := watcher.New(path, func(string) {
		d, err := loader.Load(path)
		if err != nil {
			log.Printf("Diagram reload skipped: %v", err)
			return
		}
		if _, err := sess.Reload(d); err != nil {
			log.Printf("Diagram reload failed: %v", err)
		}
	})
	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Diagram watcher stopped: %v", err)
	}
}
