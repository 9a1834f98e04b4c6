// Package coach turns text commands into session operations. The terminal and the
// Telegram bot share one Coach; commands are serialized so each is atomic.
package coach

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"LedgerDrill/internal/calculator"
	"LedgerDrill/internal/config"
	"LedgerDrill/internal/model"
	"LedgerDrill/internal/progress"
	"LedgerDrill/internal/recorder"
	"LedgerDrill/internal/report"
	"LedgerDrill/internal/scenario"
	"LedgerDrill/internal/session"

	"github.com/sirupsen/logrus"
)

const historyLimit = 10

// Coach owns the learner's session together with progress tracking and attempt history.
type Coach struct {
	mu          sync.Mutex
	rng         *rand.Rand
	sess        *session.Session
	progress    *progress.Manager
	rec         recorder.Recorder
	log         logrus.FieldLogger
	defaultKind model.ScenarioKind
	now         func() time.Time

	// scoredID is the problem whose first check already went into progress.
	scoredID string
}

// New creates a Coach. defaultKind is used by "new" without an argument
// when it is not empty; otherwise a kind not yet mastered is drawn.
func New(rng *rand.Rand, pm *progress.Manager, rec recorder.Recorder, log logrus.FieldLogger, defaultKind model.ScenarioKind) *Coach {
	return &Coach{
		rng:         rng,
		sess:        session.New(rng),
		progress:    pm,
		rec:         rec,
		log:         log,
		defaultKind: defaultKind,
		now:         time.Now,
	}
}

// Handle runs one command line and returns the reply text.
func (c *Coach) Handle(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd := normalize(fields[0])
	args := fields[1:]

	switch cmd {
	case "new", "start":
		return c.cmdNew(args)
	case "show":
		return c.cmdShow()
	case "set":
		return c.cmdSet(args)
	case "check":
		return c.cmdCheck()
	case "solution":
		return c.cmdSolution()
	case "reset":
		return c.cmdReset()
	case "calc":
		return c.cmdCalc(args)
	case "progress", "status":
		return report.FormatProgress(c.progress.GetState(), Titles())
	case "history":
		return c.cmdHistory()
	case "kinds":
		return kindsHelp()
	case "help":
		return helpText
	default:
		return fmt.Sprintf("Unknown command %q. Send help for the list.", fields[0])
	}
}

// normalize accepts Telegram-style commands such as /check@ledger_bot.
func normalize(cmd string) string {
	cmd = strings.TrimPrefix(cmd, "/")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

func (c *Coach) cmdNew(args []string) string {
	kind := c.defaultKind
	if len(args) > 0 {
		k, err := scenario.ParseKind(strings.ToLower(args[0]))
		if err != nil {
			return fmt.Sprintf("%v. Send kinds for the list.", err)
		}
		kind = k
	}
	if kind == "" {
		kind = c.progress.NextKind(c.rng)
	}
	return c.start(kind)
}

func (c *Coach) start(kind model.ScenarioKind) string {
	if _, err := c.sess.Generate(kind); err != nil {
		return err.Error()
	}
	c.recordProblem()
	return c.view()
}

func (c *Coach) recordProblem() {
	p, _ := c.sess.Current()
	if err := c.rec.RecordProblem(&p); err != nil {
		config.LogError(c.log, "coach", "recordProblem", "record problem", p.ID, err)
	}
	c.log.WithFields(logrus.Fields{"kind": p.Kind, "problem_id": p.ID}).Info("problem generated")
}

func (c *Coach) view() string {
	p, ok := c.sess.Current()
	if !ok {
		return "No problem yet. Send new [kind] to start."
	}
	return report.FormatProblem(report.ProblemView{
		Problem: p,
		Prompt:  c.sess.Scenario().Prompt(p.Params),
		Entries: c.sess.Entries(),
		Result:  c.sess.Result(),
		State:   c.sess.State(),
		Stale:   c.sess.Stale(),
	})
}

func (c *Coach) cmdShow() string {
	return c.view()
}

func (c *Coach) cmdSet(args []string) string {
	if len(args) < 2 {
		return "Usage: set <row> <dr|cr> [amount]. Leave the amount out to clear the cell."
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Sprintf("Row must be a number, got %q.", args[0])
	}
	var side model.Side
	switch strings.ToLower(args[1]) {
	case "dr", "debit":
		side = model.Debit
	case "cr", "credit":
		side = model.Credit
	default:
		return fmt.Sprintf("Side must be dr or cr, got %q.", args[1])
	}
	text := strings.Join(args[2:], " ")

	id, err := c.sess.LineID(row, side)
	if err == nil {
		err = c.sess.UpdateEntry(id, text)
	}
	switch {
	case errors.Is(err, session.ErrNoProblem):
		return "No problem yet. Send new [kind] to start."
	case err != nil:
		return err.Error()
	}

	reply := fmt.Sprintf("%d. %s %s = %s", row, id.Account, side.Short(), text)
	if text == "" {
		reply = fmt.Sprintf("%d. %s %s cleared", row, id.Account, side.Short())
	}
	if c.sess.Stale() {
		reply += " (send check to re-grade)"
	}
	return reply
}

func (c *Coach) cmdCheck() string {
	res, err := c.sess.CheckAnswers()
	if err != nil {
		return "No problem yet. Send new [kind] to start."
	}
	p, _ := c.sess.Current()
	at := c.now()

	// only the first check of a problem counts toward mastery
	var kp model.KindProgress
	if c.scoredID == p.ID {
		kp = c.progress.Get(p.Kind)
	} else {
		kp = c.progress.Record(p.Kind, res, at)
		c.scoredID = p.ID
	}
	attempt := recorder.NewAttempt(p, c.sess.Entries(), res, at)
	if err := c.rec.RecordAttempt(attempt); err != nil {
		config.LogError(c.log, "coach", "cmdCheck", "record attempt", attempt.ID, err)
	}
	c.log.WithFields(logrus.Fields{
		"kind":       p.Kind,
		"problem_id": p.ID,
		"correct":    res.Correct,
		"total":      res.Total,
	}).Info("answers checked")

	out := c.view()
	if res.AllCorrect() {
		out += fmt.Sprintf("\nStreak: %d", kp.CurrentStreak)
		if kp.Mastered {
			out += " ⭐ mastered"
		}
	} else {
		out += "\nSend solution for the worked answer."
	}
	return out
}

func (c *Coach) cmdSolution() string {
	p, ok := c.sess.Current()
	if !ok {
		return "No problem yet. Send new [kind] to start."
	}
	if c.sess.State() != model.Checked {
		return "Check your answers first."
	}
	return report.FormatSolution(p, c.sess.Scenario().Solution(p.Params))
}

func (c *Coach) cmdReset() string {
	if _, err := c.sess.ResetForNewProblem(); err != nil {
		return "No problem yet. Send new [kind] to start."
	}
	c.recordProblem()
	return c.view()
}

func (c *Coach) cmdCalc(args []string) string {
	if len(args) == 0 {
		return report.FormatCalculators(calculator.All())
	}
	calc, err := calculator.Lookup(args[0])
	if err != nil {
		return fmt.Sprintf("%v. Send calc for the list.", err)
	}
	overrides := make(map[string]float64, len(args)-1)
	for _, kv := range args[1:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Sprintf("Expected key=value, got %q.", kv)
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return fmt.Sprintf("%s: %q is not a number.", k, v)
		}
		overrides[k] = f
	}
	res, err := calc.Run(overrides)
	if err != nil {
		return err.Error()
	}
	return report.FormatCalc(res)
}

func (c *Coach) cmdHistory() string {
	records, err := c.rec.ListAttempts(historyLimit)
	if err != nil {
		config.LogError(c.log, "coach", "cmdHistory", "list attempts", nil, err)
		return "History is unavailable right now."
	}
	return report.FormatAttempts(records)
}

// Drill starts a problem of the next unmastered kind, for the scheduled push.
func (c *Coach) Drill() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return "⏰ Daily drill\n\n" + c.start(c.progress.NextKind(c.rng))
}

// WeeklySummary reports attempts checked since the given time and overall progress.
func (c *Coach) WeeklySummary(since time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.rec.ListAttempts(0)
	if err != nil {
		config.LogError(c.log, "coach", "WeeklySummary", "list attempts", nil, err)
	}
	return report.FormatWeeklySummary(c.progress.GetState(), records, since, Titles())
}

// Titles maps each scenario kind to its display title.
func Titles() map[model.ScenarioKind]string {
	out := make(map[model.ScenarioKind]string, len(model.AllKinds))
	for _, s := range scenario.All() {
		out[s.Kind()] = s.Title()
	}
	return out
}

func kindsHelp() string {
	var b strings.Builder
	b.WriteString("Scenario kinds (name or number):\n")
	for i, s := range scenario.All() {
		b.WriteString(fmt.Sprintf("  %d. %-14s %s\n", i+1, s.Kind(), s.Title()))
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpText = `Commands:
  new [kind]              start a problem (kinds: depreciation, sale, note, payroll, bond)
  show                    print the current problem
  set <row> <dr|cr> [amt] type an amount; leave it out to clear the cell
  check                   grade your entries
  solution                show the worked answer (after a check)
  reset                   new problem of the same kind
  calc [name] [k=v ...]   run a what-if calculator; calc alone lists them
  progress                mastery per scenario
  history                 recent checks
  kinds                   list scenario kinds`
