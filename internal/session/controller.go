package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/leadflow/leadflow-backend/internal/config"
)

// Pinger reports liveness to the server.
type Pinger interface {
	Ping(ctx context.Context, token string) error
}

// Controller owns one client session: its persisted state, the idle timer,
// the periodic expiry check and the heartbeat. Start arms the timers and
// Stop tears them down; neither outlives the controller.
type Controller struct {
	cfg       config.Session
	store     Store
	pinger    Pinger
	clock     clockwork.Clock
	log       *slog.Logger
	onExpired func(msg string)

	mu            sync.Mutex
	state         State
	token         string
	user          User
	lastActivity  time.Time
	lastPersisted time.Time
	pending       clockwork.Timer // throttled activity write
	idle          clockwork.Timer
	running       bool
	stop          chan struct{}
	done          chan struct{}
}

// NewController creates a controller in the checking state. onExpired is
// called once, outside any lock, when the session ends for inactivity.
func NewController(
	cfg config.Session,
	store Store,
	pinger Pinger,
	clock clockwork.Clock,
	logger *slog.Logger,
	onExpired func(msg string),
) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Controller{
		cfg:       withDefaults(cfg),
		store:     store,
		pinger:    pinger,
		clock:     clock,
		log:       logger.With("component", "session"),
		onExpired: onExpired,
		state:     StateChecking,
	}
}

func withDefaults(cfg config.Session) config.Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Hour
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 5 * time.Minute
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.PersistThrottle <= 0 {
		cfg.PersistThrottle = 5 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return cfg
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Restore loads the persisted session. A session idle for longer than the
// timeout is purged and reported as ErrExpired; an unreadable store is
// purged as well.
func (c *Controller) Restore() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateChecking {
		return c.state, nil
	}

	snap, err := c.store.Load()
	if err != nil {
		c.state = StateAnonymous
		c.clearStore()
		return c.state, fmt.Errorf("session: restore: %w", err)
	}
	if snap == nil || snap.Token == "" {
		c.state = StateAnonymous
		return c.state, nil
	}

	if c.clock.Since(snap.LastActivity) > c.cfg.Timeout {
		c.state = StateAnonymous
		c.clearStore()
		c.log.Info("stored session expired", slog.Time("last_activity", snap.LastActivity))
		return c.state, ErrExpired
	}

	c.state = StateAuthenticated
	c.token = snap.Token
	c.user = snap.User
	c.lastActivity = snap.LastActivity
	return c.state, nil
}

// Begin records a fresh login and persists it.
func (c *Controller) Begin(token string, user User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("session: begin: controller is running")
	}

	now := c.clock.Now()
	if err := c.store.Save(Snapshot{Token: token, User: user, LastActivity: now}); err != nil {
		return fmt.Errorf("session: begin: %w", err)
	}

	c.state = StateAuthenticated
	c.token = token
	c.user = user
	c.lastActivity = now
	c.lastPersisted = now
	return nil
}

// Start arms the idle timer, the expiry check and the heartbeat.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	if c.running {
		return nil
	}

	c.running = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	c.idle = c.clock.AfterFunc(c.cfg.Timeout-c.clock.Since(c.lastActivity), c.idleFired)
	check := c.clock.NewTicker(c.cfg.CheckInterval)
	beat := c.clock.NewTicker(c.cfg.HeartbeatInterval)
	go c.loop(check, beat, c.stop, c.done)

	c.log.Debug("session started", slog.String("user", c.user.Email))
	return nil
}

// Stop halts every timer and waits for the background loop to exit. A
// throttled activity write still pending is flushed. Safe to call twice.
func (c *Controller) Stop() {
	c.mu.Lock()
	done := c.halt(true)
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Logout stops the controller and forgets the session.
func (c *Controller) Logout() {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateAnonymous
	c.token = ""
	c.user = User{}
	c.clearStore()
}

// Touch records user input. Events that do not qualify are ignored.
func (c *Controller) Touch(ev Event) {
	if !ev.Qualifies() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAuthenticated {
		return
	}

	now := c.clock.Now()
	c.lastActivity = now
	if c.running {
		c.idle.Reset(c.cfg.Timeout)
	}
	c.persist(now)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Controller) User() User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// ---------------------------------------------------------------------------
// Timers
// ---------------------------------------------------------------------------

func (c *Controller) loop(check, beat clockwork.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer check.Stop()
	defer beat.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-stop:
			return
		case <-check.Chan():
			c.checkIdle()
		case <-beat.Chan():
			c.heartbeat(ctx)
		}
	}
}

// checkIdle is the periodic safety net behind the idle timer.
func (c *Controller) checkIdle() {
	c.mu.Lock()
	if c.state != StateAuthenticated || c.clock.Since(c.lastActivity) <= c.cfg.Timeout {
		c.mu.Unlock()
		return
	}
	notify := c.expire()
	c.mu.Unlock()
	notify()
}

// idleFired runs when the idle timer elapses. Activity recorded since the
// timer was armed re-arms it for the remainder instead of expiring.
func (c *Controller) idleFired() {
	c.mu.Lock()
	if c.state != StateAuthenticated || !c.running {
		c.mu.Unlock()
		return
	}
	if idle := c.clock.Since(c.lastActivity); idle < c.cfg.Timeout {
		c.idle.Reset(c.cfg.Timeout - idle)
		c.mu.Unlock()
		return
	}
	notify := c.expire()
	c.mu.Unlock()
	notify()
}

// heartbeat pings the server if the user was active during the last
// interval. Failures are never surfaced.
func (c *Controller) heartbeat(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateAuthenticated {
		c.mu.Unlock()
		return
	}
	active := c.clock.Since(c.lastActivity) <= c.cfg.HeartbeatInterval
	token := c.token
	c.mu.Unlock()

	if !active {
		c.log.Debug("heartbeat skipped, no recent activity")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	if err := c.pinger.Ping(ctx, token); err != nil {
		c.log.Debug("heartbeat failed", slog.String("error", err.Error()))
	}
}

// persist writes the activity timestamp at most once per throttle window.
// A write inside the window is scheduled for its end and then stores the
// latest timestamp. c.mu must be held.
func (c *Controller) persist(now time.Time) {
	if c.pending != nil {
		return
	}
	wait := c.cfg.PersistThrottle - now.Sub(c.lastPersisted)
	if c.lastPersisted.IsZero() || wait <= 0 {
		c.writeActivity()
		return
	}
	c.pending = c.clock.AfterFunc(wait, c.flush)
}

func (c *Controller) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = nil
	if c.state == StateAuthenticated {
		c.writeActivity()
	}
}

// c.mu must be held.
func (c *Controller) writeActivity() {
	if err := c.store.SaveActivity(c.lastActivity); err != nil {
		c.log.Warn("persist activity", slog.String("error", err.Error()))
	}
	c.lastPersisted = c.clock.Now()
}

// expire ends the session and returns the notification to run once c.mu
// is released. c.mu must be held.
func (c *Controller) expire() func() {
	c.halt(false)
	c.state = StateAnonymous
	c.token = ""
	c.user = User{}
	c.clearStore()
	c.log.Info("session expired for inactivity")

	cb := c.onExpired
	return func() {
		if cb != nil {
			cb(ExpiredMessage)
		}
	}
}

// halt stops all timers and signals the loop. It returns the loop's done
// channel, or nil when nothing was running. c.mu must be held.
func (c *Controller) halt(flushPending bool) <-chan struct{} {
	if c.pending != nil {
		if c.pending.Stop() && flushPending {
			c.writeActivity()
		}
		c.pending = nil
	}
	if !c.running {
		return nil
	}
	c.running = false
	c.idle.Stop()
	close(c.stop)
	return c.done
}

// c.mu must be held.
func (c *Controller) clearStore() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn("clear session store", slog.String("error", err.Error()))
	}
}
