package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"

	"market-maker-sim/config"
	"market-maker-sim/infrastructure/logger"
	"market-maker-sim/infrastructure/monitor"
	"market-maker-sim/report"
	"market-maker-sim/sim"
)

// 做市商蒙特卡洛模拟：运行一次并打印结果；
// 指定 -listen 时持续提供 /metrics、/ws、/summary，指定 -watch 时配置变更后重跑。
func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mmsim: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	seed       int64
	steps      int
	csv        string
	listen     string
	watch      bool
	set        map[string]bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("mmsim", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "配置文件路径，留空使用默认参数")
	fs.Int64Var(&o.seed, "seed", 1, "随机种子")
	fs.IntVar(&o.steps, "steps", 2000, "模拟步数")
	fs.StringVar(&o.csv, "csv", "", "逐步序列 CSV 输出路径")
	fs.StringVar(&o.listen, "listen", "", "HTTP 监听地址（例如 :9100），留空则不启动")
	fs.BoolVar(&o.watch, "watch", false, "监听配置文件变更并重新运行")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	if o.watch && o.configPath == "" {
		return o, errors.New("-watch requires -config")
	}
	return o, nil
}

// apply 命令行显式指定的参数覆盖配置文件。
func (o options) apply(cfg config.AppConfig) (config.AppConfig, error) {
	if o.set["seed"] {
		cfg.Seed = o.seed
	}
	if o.set["steps"] {
		cfg.Steps = o.steps
	}
	if o.set["csv"] {
		cfg.Report.CSV = o.csv
	}
	if o.set["listen"] {
		cfg.Report.Listen = o.listen
	}
	return cfg, config.Validate(cfg)
}

func (o options) load() (config.AppConfig, error) {
	cfg, err := config.LoadWithEnvOverrides(o.configPath)
	if err != nil {
		return cfg, err
	}
	return o.apply(cfg)
}

type app struct {
	log *logger.Logger
	mon *monitor.Monitor
	hub *report.Hub
	srv *report.Server
	out io.Writer
}

func newApp(log *logger.Logger, out io.Writer) *app {
	mon := monitor.New(monitor.DefaultConfig())
	hub := report.NewHub()
	return &app{
		log: log,
		mon: mon,
		hub: hub,
		srv: report.NewServer(mon.Handler(), hub),
		out: out,
	}
}

func (a *app) runOnce(cfg config.AppConfig) (*sim.Result, error) {
	res, err := sim.Run(cfg.RunnerConfig(), sim.LogObserver{Log: a.log}, a.mon, a.hub, a.srv)
	if err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}
	report.Print(a.out, res)
	if cfg.Report.CSV != "" {
		if err := report.WriteSeriesFile(cfg.Report.CSV, res.Record); err != nil {
			return res, err
		}
		a.log.Info("series written", zap.String("path", cfg.Report.CSV), zap.String("runId", res.RunID))
	}
	return res, nil
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	a := newApp(log, out)
	if _, err := a.runOnce(cfg); err != nil {
		return err
	}
	if cfg.Report.Listen == "" && !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx, cfg, opts)
}

// serve 常驻模式：HTTP 服务与配置热重跑，直到收到退出信号。
func (a *app) serve(ctx context.Context, cfg config.AppConfig, opts options) error {
	errCh := make(chan error, 2)

	var httpSrv *http.Server
	if cfg.Report.Listen != "" {
		httpSrv = &http.Server{
			Addr:              cfg.Report.Listen,
			Handler:           a.srv,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.log.Info("http server listening", zap.String("addr", cfg.Report.Listen))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	if opts.watch {
		w, err := config.NewWatcher(opts.configPath, 500*time.Millisecond)
		if err != nil {
			return err
		}
		wlog := a.log.WithFields(map[string]interface{}{"watch": opts.configPath})
		go func() {
			err := w.Run(ctx, func(next config.AppConfig) {
				next, err := opts.apply(next)
				if err != nil {
					wlog.LogError(err, nil)
					return
				}
				wlog.Info("config changed, re-running")
				if _, err := a.runOnce(next); err != nil {
					wlog.LogError(err, nil)
				}
			}, func(err error) {
				wlog.LogError(err, nil)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		a.log.Warn("sd_notify ready failed", zap.Error(err))
	} else if ok {
		a.log.Debug("sd_notify ready sent")
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down")
	case runErr = <-errCh:
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	a.hub.Close()
	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}
