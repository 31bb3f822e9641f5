package debug

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/Versifine/baguette/internal/input"
	"github.com/Versifine/baguette/internal/locomotion"
)

const (
	defaultMovePulse = 180 * time.Millisecond
	statusEvery      = 6
)

// Target is the character the console drives and inspects.
type Target interface {
	State() locomotion.State
	Alive() bool
	Teleport(pos mgl64.Vec3)
	TakeDamage(amount float64)
}

type control int

const (
	moveForward control = iota
	moveBack
	moveLeft
	moveRight
	lookLeft
	lookRight
	lookUp
	lookDown
	jump
	attack
	interact
)

var opposite = map[control]control{
	moveForward: moveBack,
	moveBack:    moveForward,
	moveLeft:    moveRight,
	moveRight:   moveLeft,
	lookLeft:    lookRight,
	lookRight:   lookLeft,
	lookUp:      lookDown,
	lookDown:    lookUp,
}

// Console turns raw terminal keystrokes into input samples for headless
// play. A terminal only reports key presses, so each press holds its control
// for movePulse. Commands typed after ':' run on the frame goroutine the next
// time Sample is called.
type Console struct {
	target    Target
	movePulse time.Duration
	out       io.Writer
	now       func() time.Time

	mu          sync.Mutex
	pulses      map[control]time.Time
	sprint      bool
	commandMode bool
	commandBuf  []rune
	pending     []string
	frames      int
	statusWidth int
}

func NewConsole(target Target) *Console {
	return &Console{
		target:    target,
		movePulse: defaultMovePulse,
		out:       os.Stdout,
		now:       time.Now,
		pulses:    make(map[control]time.Time),
	}
}

// Start puts stdin in raw mode and reads keys until ctx ends, stdin closes,
// or Ctrl-C is pressed.
func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.target == nil {
		return fmt.Errorf("console target is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	fmt.Fprint(c.out, "[debug] console started (W/A/S/D move, arrows look, Space jump, ] sprint, F attack, E interact, : command)\r\n")
	return c.serve(ctx, bufio.NewReader(os.Stdin))
}

func (c *Console) serve(ctx context.Context, reader *bufio.Reader) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if b == 3 { // Ctrl-C; raw mode swallows the signal
			return nil
		}
		c.handleKey(reader, b)
	}
}

// Sample runs queued commands against the target and reports the controls
// whose pulse is still live.
func (c *Console) Sample() input.Sample {
	c.runPending()

	c.mu.Lock()
	now := c.now()
	live := func(k control) bool {
		until, ok := c.pulses[k]
		if ok && !now.Before(until) {
			delete(c.pulses, k)
			return false
		}
		return ok
	}
	s := input.Sample{
		Move:     mgl64.Vec2{axis(live(moveLeft), live(moveRight)), axis(live(moveBack), live(moveForward))},
		Look:     mgl64.Vec2{axis(live(lookLeft), live(lookRight)), axis(live(lookDown), live(lookUp))},
		Jump:     live(jump),
		Sprint:   c.sprint,
		Attack:   live(attack),
		Interact: live(interact),
	}
	c.frames++
	render := c.frames%statusEvery == 0 && !c.commandMode
	c.mu.Unlock()

	if render {
		c.renderStatusLine(s)
	}
	return s
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
	case 'w', 'W':
		c.pulse(moveForward)
	case 's', 'S':
		c.pulse(moveBack)
	case 'a', 'A':
		c.pulse(moveLeft)
	case 'd', 'D':
		c.pulse(moveRight)
	case ' ':
		c.pulse(jump)
	case 'f', 'F':
		c.pulse(attack)
	case 'e', 'E':
		c.pulse(interact)
	case ']':
		c.toggleSprint()
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D':
			c.pulse(lookLeft)
		case 'C':
			c.pulse(lookRight)
		case 'A':
			c.pulse(lookUp)
		case 'B':
			c.pulse(lookDown)
		}
	}
}

func (c *Console) pulse(k control) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulses[k] = c.now().Add(c.movePulse)
	if o, ok := opposite[k]; ok {
		delete(c.pulses, o)
	}
}

func (c *Console) toggleSprint() {
	c.mu.Lock()
	c.sprint = !c.sprint
	enabled := c.sprint
	c.mu.Unlock()
	slog.Debug("debug sprint toggled", "enabled", enabled)
}

func (c *Console) clearInput() {
	c.mu.Lock()
	c.pulses = make(map[control]time.Time)
	c.sprint = false
	c.mu.Unlock()
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		if cmd != "" {
			c.pending = append(c.pending, cmd)
		}
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n")
	case 27: // ESC cancels
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[debug] command cancelled\r\n")
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s \r:%s", buf, buf)
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) runPending() {
	c.mu.Lock()
	cmds := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, cmd := range cmds {
		c.executeCommand(cmd)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		st := c.target.State()
		fmt.Fprintf(c.out, "[debug] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) ground=%t alive=%t\r\n",
			st.Position.X(), st.Position.Y(), st.Position.Z(),
			st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z(),
			st.Grounded, c.target.Alive(),
		)
	case "tp":
		if len(parts) != 4 {
			fmt.Fprint(c.out, "[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		x, err1 := strconv.ParseFloat(parts[1], 64)
		y, err2 := strconv.ParseFloat(parts[2], 64)
		z, err3 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Fprint(c.out, "[debug] invalid tp args\r\n")
			return
		}
		c.target.Teleport(mgl64.Vec3{x, y, z})
		fmt.Fprintf(c.out, "[debug] teleported to (%.3f, %.3f, %.3f)\r\n", x, y, z)
	case "damage":
		if len(parts) != 2 {
			fmt.Fprint(c.out, "[debug] usage: :damage <amount>\r\n")
			return
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			fmt.Fprint(c.out, "[debug] invalid damage amount\r\n")
			return
		}
		c.target.TakeDamage(amount)
	default:
		fmt.Fprintf(c.out, "[debug] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[debug] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  Arrows: pulse camera look\r\n")
	fmt.Fprint(c.out, "  Space: jump  F: attack  E: interact\r\n")
	fmt.Fprint(c.out, "  ]: toggle sprint  X: clear all input\r\n")
	fmt.Fprint(c.out, "  : enter command mode  Ctrl-C: quit\r\n")
	fmt.Fprint(c.out, "[debug] commands:\r\n")
	fmt.Fprint(c.out, "  :tp <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :damage <amount>\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) renderStatusLine(s input.Sample) {
	st := c.target.State()
	line := fmt.Sprintf(
		"[MOVE:%+.0f,%+.0f SPR:%s JMP:%s | X:%.2f Y:%.2f Z:%.2f speed:%.2f ground:%t]",
		s.Move.X(), s.Move.Y(),
		boolLabel(s.Sprint),
		boolLabel(s.Jump),
		st.Position.X(), st.Position.Y(), st.Position.Z(),
		st.PlanarSpeed(),
		st.Grounded,
	)

	c.mu.Lock()
	padding := ""
	if c.statusWidth > len(line) {
		padding = strings.Repeat(" ", c.statusWidth-len(line))
	}
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
	fmt.Fprintf(c.out, "\r%s%s", line, padding)
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func axis(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
