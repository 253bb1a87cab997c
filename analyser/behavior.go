package analyser

import (
	"sync"
	"time"

	"github.com/ArcletProject/Alconna/errs"
	"github.com/ArcletProject/Alconna/result"
)

// Behavior is a deterministic post-parse hook: it may mutate arp, or flip
// arp.Matched to false with a BehaviorError (spec.md §4.4 step 6).
// Registered Behaviors run in registration order, each at most once per
// successful parse; the first failure stops the rest.
type Behavior func(arp *result.Arparma) *errs.Error

// Exclusion rejects a parse where more than one of names was matched as an
// option or subcommand at the top level, the built-in mutual-exclusion
// behavior spec.md §4.4 step 6 names as an example.
func Exclusion(names ...string) Behavior {
	return func(arp *result.Arparma) *errs.Error {
		count := 0
		for _, n := range names {
			if _, ok := arp.Options[n]; ok {
				count++
				continue
			}
			if _, ok := arp.Subcommands[n]; ok {
				count++
			}
		}
		if count > 1 {
			return errs.New(errs.BehaviorError).WithName("exclusion")
		}
		return nil
	}
}

// CoolDown rejects repeated invocations of the same command within window,
// keyed by an arbitrary caller-supplied key (e.g. a user ID) — the
// built-in rate-limiting behavior named in spec.md §4.4 step 6.
func CoolDown(window time.Duration) *CoolDownBehavior {
	return &CoolDownBehavior{window: window, last: map[string]time.Time{}}
}

// CoolDownBehavior tracks last-invocation timestamps per key.
type CoolDownBehavior struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

// Check returns a Behavior bound to key, to be registered per invocation
// context (a session, a user).
func (c *CoolDownBehavior) Check(key string, now time.Time) Behavior {
	return func(arp *result.Arparma) *errs.Error {
		c.mu.Lock()
		defer c.mu.Unlock()
		if last, ok := c.last[key]; ok && now.Sub(last) < c.window {
			return errs.New(errs.BehaviorError).WithName("cool_down")
		}
		c.last[key] = now
		return nil
	}
}

// SetDefault fills path with value in arp's OtherArgs when the path was
// left unresolved, the built-in default-injection behavior named in
// spec.md §4.4 step 6. Query does not read OtherArgs, so the injected
// value is visible only through arp.OtherArgs.
func SetDefault(path string, value any) Behavior {
	return func(arp *result.Arparma) *errs.Error {
		if v, err := arp.Query(path); err == nil && v != nil {
			return nil
		}
		arp.OtherArgs[path] = value
		return nil
	}
}

// RunBehaviors applies each Behavior to arp in order, stopping and marking
// arp unmatched at the first failure (spec.md §4.4 step 6).
func RunBehaviors(arp *result.Arparma, behaviors []Behavior) {
	for _, b := range behaviors {
		if err := b(arp); err != nil {
			arp.Fail(err)
			return
		}
	}
}
