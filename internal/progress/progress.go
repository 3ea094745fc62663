package progress

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucrnz/msconv/internal/util"
)

// Counter emits structured progress logs while a batch is converted.
type Counter struct {
	LineStep       int64         // log every LineStep lines
	RenderInterval time.Duration // interval for interval-based logs
	Logger         *slog.Logger
	Quiet          bool

	lines    atomic.Int64
	rejected atomic.Int64
	bytes    atomic.Int64
	nextLine int64
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	lastIntervalLines int64
	lastIntervalTime  time.Time
}

// New creates a counter with sane defaults.
func New(lineStep int64, interval time.Duration, logger *slog.Logger, quiet bool) *Counter {
	if lineStep <= 0 {
		lineStep = 10_000
	}
	if interval < 0 {
		interval = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Counter{
		LineStep:       lineStep,
		RenderInterval: interval,
		Logger:         logger,
		Quiet:          quiet,
		nextLine:       lineStep,
		done:           make(chan struct{}),
	}
}

// Update records one processed line and the total bytes consumed so far.
// It is called from the batch goroutine only.
func (c *Counter) Update(rejected bool, bytesRead int64) {
	n := c.lines.Add(1)
	if rejected {
		c.rejected.Add(1)
	}
	c.bytes.Store(bytesRead)

	if !c.Quiet && n >= c.nextLine {
		c.log("batch_progress", n)
		c.nextLine += c.LineStep
	}
}

// Lines returns the number of lines recorded so far.
func (c *Counter) Lines() int64 { return c.lines.Load() }

// Rejected returns the number of rejected lines recorded so far.
func (c *Counter) Rejected() int64 { return c.rejected.Load() }

// Start begins interval-based logging in a goroutine
func (c *Counter) Start() {
	if c.Quiet || c.RenderInterval <= 0 {
		return
	}
	c.lastIntervalTime = time.Now()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.logInterval()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop ends interval-based logging and logs a final summary.
func (c *Counter) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.wg.Wait()
		if !c.Quiet {
			c.log("batch_done", c.lines.Load())
		}
	})
}

func (c *Counter) logInterval() {
	n := c.lines.Load()
	// Throttle: only log if lines changed since last interval
	if n == c.lastIntervalLines {
		return
	}

	now := time.Now()
	var perSec int64
	if elapsed := now.Sub(c.lastIntervalTime).Seconds(); elapsed > 0 {
		perSec = int64(float64(n-c.lastIntervalLines) / elapsed)
	}
	c.Logger.Info("batch_progress",
		"lines", n,
		"rejected", c.rejected.Load(),
		"read_bytes", c.bytes.Load(),
		"read", util.HumanReadableBytes(c.bytes.Load()),
		"lines_per_sec", perSec,
	)
	c.lastIntervalTime = now
	c.lastIntervalLines = n
}

func (c *Counter) log(msg string, lines int64) {
	c.Logger.Info(msg,
		"lines", lines,
		"rejected", c.rejected.Load(),
		"read_bytes", c.bytes.Load(),
		"read", util.HumanReadableBytes(c.bytes.Load()),
	)
}
