package main

import "context"
import "errors"
import "flag"
import "fmt"
import "io/fs"
import "log/slog"
import "net/http"
import "os"
import "os/signal"
import "syscall"
import "time"

import "github.com/neurlang/churn/config"
import "github.com/neurlang/churn/dashboard"
import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/logging"
import "github.com/neurlang/churn/net/pipeline"

// open loads the model, then the data. A missing or broken input gives a dashboard that
// shows the reason instead of the pages.
func open(cfg *config.Config, log *slog.Logger) *dashboard.App {
	model, err := pipeline.ReadCompressedFromFile(cfg.Model.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Error("model file not found", "path", cfg.Model.Path, "error", err)
		return dashboard.NewUnavailable(errors.New("Model file not found! Please run train_churn first."))
	}
	if err != nil {
		log.Error("model file unusable", "path", cfg.Model.Path, "error", err)
		return dashboard.NewUnavailable(fmt.Errorf("Model file could not be loaded: %w", err))
	}
	raw, err := telco.Load(cfg.Data.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Error("data file not found", "path", cfg.Data.Path, "error", err)
		return dashboard.NewUnavailable(fmt.Errorf("Data file not found! Make sure '%s' exists.", cfg.Data.Path))
	}
	if err != nil {
		log.Error("data file unusable", "path", cfg.Data.Path, "error", err)
		return dashboard.NewUnavailable(fmt.Errorf("Data file could not be loaded: %w", err))
	}
	app, err := dashboard.New(raw, model, log)
	if err != nil {
		log.Error("dashboard unavailable", "error", err)
		return dashboard.NewUnavailable(err)
	}
	log.Info("dashboard ready", "rows", raw.Len(), "features", model.Columns.Width())
	return app
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	dataset := flag.String("dataset", "", "telco customer churn .csv dataset, overrides data.path")
	model := flag.String("model", "", "trained .json.sz model, overrides model.path")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *dataset != "" {
		cfg.Data.Path = *dataset
	}
	if *model != "" {
		cfg.Model.Path = *model
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	log := logging.Init(cfg.Log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      open(cfg, log).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var failed = make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		if err != nil {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Error("shutdown", "error", err)
	}
}
