package quest

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Versifine/baguette/internal/audio"
	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/countdown"
	"github.com/Versifine/baguette/internal/event"
)

type Config = config.QuestConfig

type Step int

const (
	NotStarted Step = iota
	GoToBaker
	ReturnToGiver
	Finished
)

func (s Step) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case GoToBaker:
		return "go_to_baker"
	case ReturnToGiver:
		return "return_to_giver"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Speakers.
const (
	Giver = "giver"
	Baker = "baker"
)

const (
	hintTalk  = "[E] Talk"
	hintTake  = "[E] Take the baguette"
	hintGive  = "[E] Give the baguette"
	lineAsk   = "I need you. Go to the bakery\nand fetch me a baguette."
	lineBaker = "You found me! Take this\nbaguette to the other one."
	lineThank = "Thanks, jerk."
)

// Lines is what floats above one speaker.
type Lines struct {
	Dialogue string
	Hint     string
}

// Quest is the baguette fetch quest: talk to the giver, collect the baguette
// from the baker, bring it back.
type Quest struct {
	cfg   Config
	giver mgl64.Vec3
	baker mgl64.Vec3
	cues  audio.Dispatcher
	bus   *event.Bus

	step        Step
	hasBaguette bool
	lines       map[string]*Lines

	// dialog clears the speaker who spoke last.
	dialog      *countdown.Timer
	lastSpeaker string
	cleanup     *countdown.Timer
}

func New(cfg Config, giver, baker mgl64.Vec3, cues audio.Dispatcher, bus *event.Bus) *Quest {
	if cues == nil {
		cues = audio.Nop{}
	}
	q := &Quest{
		cfg:   cfg,
		giver: giver,
		baker: baker,
		cues:  cues,
		bus:   bus,
		lines: map[string]*Lines{Giver: {}, Baker: {}},
	}
	q.dialog = countdown.New(func() { q.say(q.lastSpeaker, "") })
	q.cleanup = countdown.New(q.clearAll)
	q.hint(Giver, hintTalk)
	return q
}

// Update advances the quest for one frame. interact is true on the frame the
// interact button went down.
func (q *Quest) Update(player mgl64.Vec3, interact bool, dt float64) {
	q.dialog.Tick(dt)
	q.cleanup.Tick(dt)

	nearGiver := player.Sub(q.giver).Len() <= q.cfg.InteractDistance
	nearBaker := player.Sub(q.baker).Len() <= q.cfg.InteractDistance

	switch q.step {
	case NotStarted:
		q.offer(Giver, nearGiver, hintTalk)
		if nearGiver && interact {
			q.speak(Giver, lineAsk)
			q.hint(Giver, "")
			q.hint(Baker, hintTake)
			q.cues.Play(audio.Squalala)
			q.advance(GoToBaker)
		}
	case GoToBaker:
		q.offer(Baker, nearBaker, hintTake)
		if nearBaker && interact {
			q.hasBaguette = true
			q.speak(Baker, lineBaker)
			q.hint(Baker, "")
			q.hint(Giver, hintGive)
			q.cues.Play(audio.Squalala)
			q.advance(ReturnToGiver)
		}
	case ReturnToGiver:
		q.offer(Giver, nearGiver, hintGive)
		if nearGiver && interact {
			q.hasBaguette = false
			q.dialog.Stop()
			q.say(Giver, lineThank)
			q.hint(Giver, "")
			q.cleanup.Start(q.cfg.DialogDuration)
			q.advance(Finished)
		}
	}
}

// offer shows the hint only while the player is in reach.
func (q *Quest) offer(speaker string, near bool, text string) {
	if near {
		q.hint(speaker, text)
	} else {
		q.hint(speaker, "")
	}
}

func (q *Quest) advance(to Step) {
	from := q.step
	q.step = to
	slog.Info("Quest step", "from", from, "to", to)
	q.bus.Publish(event.EventQuestStep, event.QuestStepEvent{From: from.String(), To: to.String()})
}

// speak shows a dialogue line that clears after DialogDuration.
func (q *Quest) speak(speaker, text string) {
	q.say(speaker, text)
	q.lastSpeaker = speaker
	q.dialog.Start(q.cfg.DialogDuration)
}

func (q *Quest) say(speaker, text string) {
	l := q.lines[speaker]
	if l == nil || l.Dialogue == text {
		return
	}
	l.Dialogue = text
	q.bus.Publish(event.EventDialogue, event.DialogueEvent{Speaker: speaker, Text: text})
}

func (q *Quest) hint(speaker, text string) {
	l := q.lines[speaker]
	if l == nil || l.Hint == text {
		return
	}
	l.Hint = text
	q.bus.Publish(event.EventDialogue, event.DialogueEvent{Speaker: speaker, Text: text, Hint: true})
}

func (q *Quest) clearAll() {
	for _, speaker := range []string{Giver, Baker} {
		q.say(speaker, "")
		q.hint(speaker, "")
	}
}

func (q *Quest) Step() Step {
	return q.step
}

func (q *Quest) HasBaguette() bool {
	return q.hasBaguette
}

// Lines returns a copy of what is shown above speaker.
func (q *Quest) Lines(speaker string) Lines {
	if l := q.lines[speaker]; l != nil {
		return *l
	}
	return Lines{}
}

func (q *Quest) GiverPosition() mgl64.Vec3 {
	return q.giver
}

func (q *Quest) BakerPosition() mgl64.Vec3 {
	return q.baker
}
