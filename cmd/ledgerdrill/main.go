package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"LedgerDrill/internal/coach"
	"LedgerDrill/internal/config"
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/notifier"
	"LedgerDrill/internal/progress"
	"LedgerDrill/internal/recorder"
	"LedgerDrill/internal/report"
	"LedgerDrill/internal/scenario"
	"LedgerDrill/internal/scheduler"

	"github.com/sirupsen/logrus"
)

const usage = `Usage: ledgerdrill [flags] <command>

Commands:
  repl                practice in the terminal (default)
  bot                 run the Telegram bot with scheduled drills
  export <file.xlsx>  write attempt history and progress to a workbook

Flags:
`

func main() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	cfgPath := flag.String("config", defaultCfg, "path to the YAML config file")
	seed := flag.String("seed", "", "seed for reproducible problems (overrides practice.seed)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != "" {
		cfg.Practice.Seed = *seed
	}

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "repl"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "repl":
		err = runREPL(cfg, logger)
	case "bot":
		err = runBot(cfg, logger)
	case "export":
		err = runExport(cfg, logger, flag.Arg(1))
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.WithError(err).Fatal(cmd + " failed")
	}
}

// openRecorder falls back to the noop recorder when SQLite cannot be opened.
func openRecorder(cfg *config.Config, log logrus.FieldLogger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.WithError(err).Warn("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newCoach(cfg *config.Config, log logrus.FieldLogger, rec recorder.Recorder) (*coach.Coach, error) {
	pm, err := progress.NewManager(cfg.Progress.StateFile, cfg.Practice.MasteryStreak, log)
	if err != nil {
		return nil, fmt.Errorf("init progress manager: %w", err)
	}
	var kind model.ScenarioKind
	if cfg.Practice.DefaultKind != "" {
		if kind, err = scenario.ParseKind(cfg.Practice.DefaultKind); err != nil {
			return nil, err
		}
	}
	return coach.New(scenario.NewRand(cfg.Practice.Seed), pm, rec, log, kind), nil
}

func runREPL(cfg *config.Config, log *logrus.Logger) error {
	rec := openRecorder(cfg, log)
	defer rec.Close()

	c, err := newCoach(cfg, log, rec)
	if err != nil {
		return err
	}

	fmt.Println("LedgerDrill. Type help for commands, quit to exit.")
	fmt.Println()
	fmt.Println(c.Handle("new"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if reply := c.Handle(line); reply != "" {
			fmt.Println(reply)
		}
	}
	return scanner.Err()
}

func runBot(cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log.Info("LedgerDrill bot starting")

	rec := openRecorder(cfg, log)
	defer rec.Close()

	c, err := newCoach(cfg, log, rec)
	if err != nil {
		return err
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, c, tn, log)
	if err := sched.RegisterAll(cfg.Schedule.DrillCron, cfg.Schedule.SummaryCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, sending a drill now")
		go sched.RunDrillNow()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}

func runExport(cfg *config.Config, log *logrus.Logger, filename string) error {
	if filename == "" {
		return fmt.Errorf("export needs an output file name")
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		return fmt.Errorf("open attempt history: %w", err)
	}
	defer sr.Close()

	records, err := sr.ListAttempts(0)
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}
	state := model.ProgressState{}
	if s, err := progress.LoadState(cfg.Progress.StateFile); err == nil {
		state = *s
	} else {
		log.WithError(err).Warn("progress state unreadable, exporting attempts only")
	}
	if state.MasteryStreak == 0 {
		state.MasteryStreak = cfg.Practice.MasteryStreak
	}

	if err := report.ExportAttempts(filename, records, state); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": filename, "attempts": len(records)}).Info("export written")
	return nil
}
