package tunnel

import (
	"context"
	"fmt"
	"sync"

	"github.com/yllada/wgctl/common"
)

// step is one scripted outcome of a command.
type step struct {
	result Result
	err    error
}

// scriptedRunner answers commands from per-command-line queues. The last
// step of a queue repeats once the queue is drained.
type scriptedRunner struct {
	mu    sync.Mutex
	steps map[string][]step
	calls []string
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{steps: make(map[string][]step)}
}

func (r *scriptedRunner) on(cmd string, steps ...step) *scriptedRunner {
	r.steps[cmd] = append(r.steps[cmd], steps...)
	return r
}

func (r *scriptedRunner) Run(_ context.Context, argv []string, _ bool) (Result, error) {
	cmd := FormatCommand(argv)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)

	queue := r.steps[cmd]
	if len(queue) == 0 {
		return Result{}, common.MarkError(common.ErrSpawn, fmt.Errorf("unexpected command %q", cmd))
	}
	next := queue[0]
	if len(queue) > 1 {
		r.steps[cmd] = queue[1:]
	}
	return next.result, next.err
}

func (r *scriptedRunner) count(cmd string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == cmd {
			n++
		}
	}
	return n
}

func exited(code int) step {
	return step{result: Result{ExitCode: code}}
}

func printed(code int, stdout string) step {
	return step{result: Result{ExitCode: code, Stdout: NormalizeOutput(stdout)}}
}

func failedWith(code int, stderr string) step {
	return step{result: Result{ExitCode: code, Stderr: NormalizeOutput(stderr)}}
}

func spawnFault() step {
	return step{err: common.MarkError(common.ErrSpawn, fmt.Errorf("exec: not found"))}
}

// scriptedUI answers prompts from queues and records what it was shown.
type scriptedUI struct {
	answers    []bool
	responses  []string
	disconnect []bool

	askErr     error
	requestErr error
	presentErr error
	notifyErr  error

	asked    []string
	shown    []string
	notified []string
	labels   []string
}

func (u *scriptedUI) AskYesNo(_ context.Context, prompt string) (bool, error) {
	u.asked = append(u.asked, prompt)
	if u.askErr != nil {
		return false, u.askErr
	}
	if len(u.answers) == 0 {
		return false, nil
	}
	answer := u.answers[0]
	u.answers = u.answers[1:]
	return answer, nil
}

func (u *scriptedUI) RequestFileAndFlag(_ context.Context, _ string, labels []string) (string, bool, error) {
	u.labels = labels
	if u.requestErr != nil {
		return "", false, u.requestErr
	}
	if len(u.responses) == 0 {
		return "", false, nil
	}
	response := u.responses[0]
	u.responses = u.responses[1:]
	return response, true, nil
}

func (u *scriptedUI) PresentStatus(_ context.Context, status string) (bool, error) {
	u.shown = append(u.shown, status)
	if u.presentErr != nil {
		return false, u.presentErr
	}
	if len(u.disconnect) == 0 {
		return false, nil
	}
	answer := u.disconnect[0]
	u.disconnect = u.disconnect[1:]
	return answer, nil
}

func (u *scriptedUI) Notify(_ context.Context, message string) error {
	u.notified = append(u.notified, message)
	return u.notifyErr
}

type recordingNotifier struct {
	titles   []string
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
	return n.err
}

type memoryRecorder struct {
	events []common.LifecycleEvent
	err    error
}

func (m *memoryRecorder) Record(_ context.Context, event common.LifecycleEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func (m *memoryRecorder) actions() []string {
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Action
	}
	return out
}
