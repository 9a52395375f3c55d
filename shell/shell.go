// Package shell lets the frontend open URLs and run commands declared in the manifest.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/jarvis-agent/desktop/internal/types"
)

// ErrNotAllowed is returned when a request falls outside the shell scope.
var ErrNotAllowed = errors.New("not allowed by shell scope")

// defaultOpenScope allows mailto, tel, http and https targets.
const defaultOpenScope = `^((mailto:\w+)|(tel:\w+)|(https?://\w+)).+`

// Service is the shell plugin bound to Wails.
type Service struct {
	opener func(url string) error

	mu       sync.RWMutex
	open     *regexp.Regexp
	commands map[string]command
}

type command struct {
	program string
	timeout time.Duration
	args    []arg
}

type arg struct {
	value     string
	validator *regexp.Regexp
}

// NewService creates the shell plugin with the default scope: URLs may be
// opened, no commands may run. opener hands URLs to the OS.
func NewService(opener func(url string) error) *Service {
	return &Service{
		opener:   opener,
		open:     regexp.MustCompile(defaultOpenScope),
		commands: make(map[string]command),
	}
}

// SetScope replaces the scope. The previous scope stays in place on error.
func (s *Service) SetScope(scope types.ShellScope) error {
	pattern := scope.Open
	if pattern == "" {
		pattern = defaultOpenScope
	}
	open, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile open scope: %w", err)
	}

	commands := make(map[string]command, len(scope.Commands))
	for _, c := range scope.Commands {
		timeout := c.TimeoutSeconds
		if timeout <= 0 {
			timeout = types.DefaultCommandTimeout
		}
		cmd := command{program: c.Program, timeout: time.Duration(timeout) * time.Second}
		for _, a := range c.Args {
			if a.Validator == "" {
				cmd.args = append(cmd.args, arg{value: a.Value})
				continue
			}
			re, err := regexp.Compile(`^(?:` + a.Validator + `)$`)
			if err != nil {
				return fmt.Errorf("compile validator for %s: %w", c.Name, err)
			}
			cmd.args = append(cmd.args, arg{validator: re})
		}
		commands[c.Name] = cmd
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
	s.commands = commands
	return nil
}

// Open opens target with the system's default handler.
func (s *Service) Open(target string) error {
	s.mu.RLock()
	allowed := s.open.MatchString(target)
	s.mu.RUnlock()

	if !allowed {
		return fmt.Errorf("open %q: %w", target, ErrNotAllowed)
	}
	if s.opener == nil {
		return errors.New("no url opener configured")
	}
	if err := s.opener(target); err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	return nil
}

// Execute runs the scoped command name with args and waits for it to exit.
// A non-zero exit status is reported in the output, not as an error.
func (s *Service) Execute(name string, args []string) (types.CommandOutput, error) {
	return s.ExecuteContext(context.Background(), name, args)
}

// ExecuteContext is Execute with a caller supplied context.
func (s *Service) ExecuteContext(ctx context.Context, name string, args []string) (types.CommandOutput, error) {
	s.mu.RLock()
	cmd, ok := s.commands[name]
	s.mu.RUnlock()

	if !ok {
		return types.CommandOutput{}, fmt.Errorf("command %q: %w", name, ErrNotAllowed)
	}
	argv, err := cmd.resolve(args)
	if err != nil {
		return types.CommandOutput{}, fmt.Errorf("command %q: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.program, argv...)
	c.Stdout = &stdout
	c.Stderr = &stderr

	slog.Debug("shell execute", "command", name, "program", cmd.program)
	err = c.Run()

	out := types.CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return out, fmt.Errorf("command %q: %w", name, ctx.Err())
	case errors.As(err, &exitErr):
		out.Code = exitErr.ExitCode()
	default:
		return out, fmt.Errorf("command %q: %w", name, err)
	}
	return out, nil
}

// resolve checks caller args against the scope, position by position.
func (c command) resolve(args []string) ([]string, error) {
	if len(args) != len(c.args) {
		return nil, fmt.Errorf("got %d args, want %d: %w", len(args), len(c.args), ErrNotAllowed)
	}
	for i, a := range c.args {
		if a.validator == nil {
			if args[i] != a.value {
				return nil, fmt.Errorf("arg %d must be %q: %w", i, a.value, ErrNotAllowed)
			}
			continue
		}
		if !a.validator.MatchString(args[i]) {
			return nil, fmt.Errorf("arg %d rejected by validator: %w", i, ErrNotAllowed)
		}
	}
	return args, nil
}
