package event

import "github.com/go-gl/mathgl/mgl64"

const (
	EventJumped    = "player.jumped"
	EventLanded    = "player.landed"
	EventDamaged   = "player.damaged"
	EventDied      = "player.died"
	EventFell      = "player.fell"
	EventRespawned = "player.respawned"

	EventQuestStep      = "quest.step"
	EventDialogue       = "dialogue.line"
	EventDoorOpened     = "door.opened"
	EventEnemyDefeated  = "enemy.defeated"
	EventAttackResolved = "combat.attack"
)

type MotionEvent struct {
	Frame    uint64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

type DamageEvent struct {
	Amount float64
	NewHP  float64
}

type DeathEvent struct {
	Position mgl64.Vec3
}

type RespawnEvent struct {
	From mgl64.Vec3
	To   mgl64.Vec3
	// FoundGround is false when no surface was hit and the fallback height was used.
	FoundGround bool
}

type QuestStepEvent struct {
	From string
	To   string
}

// DialogueEvent carries one speaker line. An empty Text clears the speaker.
type DialogueEvent struct {
	Speaker string
	Text    string
	Hint    bool
}

type EnemyEvent struct {
	Name     string
	Position mgl64.Vec3
}

type AttackEvent struct {
	Hits   int
	Damage int
}

type DoorEvent struct {
	Position mgl64.Vec3
	Message  string
}
