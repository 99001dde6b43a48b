package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
	"github.com/cory-johannsen/wildlands/internal/game/loot"
	"github.com/cory-johannsen/wildlands/internal/game/progression"
	"github.com/cory-johannsen/wildlands/internal/game/stats"
)

const (
	// LogShown is how many of the most recent log lines a battle screen shows.
	LogShown = 3
	// logCap bounds the retained log.
	logCap = 32
	// DefendBonus is the one-shot defense granted by the Defend action.
	DefendBonus = 5
	// VictoryLootChance is the probability of a loot roll after a victory.
	VictoryLootChance = 0.75
	// DefeatPenalty is the currency lost on defeat.
	DefeatPenalty = 50
	// DefeatHealth is the health left after a defeat.
	DefeatHealth = 20
)

var (
	// ErrBattleOver is returned when acting on a resolved battle.
	ErrBattleOver = errors.New("combat: battle already resolved")
	// ErrNotUsable is returned when an item cannot be used in battle.
	ErrNotUsable = errors.New("combat: item is not usable in battle")
)

// EnemyNames are the foes a battle may generate.
var EnemyNames = []string{"Goblin", "Wolf", "Bandit", "Skeleton", "Troll"}

// State is the battle state machine position.
type State int

const (
	StateIdle State = iota
	StatePlayerTurn
	StateEnemyTurn
	StateResolved
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlayerTurn:
		return "player turn"
	case StateEnemyTurn:
		return "enemy turn"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Result is how a battle ended.
type Result int

const (
	ResultNone Result = iota
	ResultVictory
	ResultDefeat
	ResultFled
)

// String returns a human-readable result label.
func (r Result) String() string {
	switch r {
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	case ResultFled:
		return "fled"
	default:
		return "none"
	}
}

// ActionKind is a player-turn choice.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
	ActionItem
	ActionFlee
)

// Action is one player-turn command. Item names the healing item to use with
// ActionItem.
type Action struct {
	Kind ActionKind
	Item string
}

// Enemy is the generated opponent of a battle.
type Enemy struct {
	Name      string
	Level     int
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
}

// NewEnemy scales an enemy to level.
//
// Precondition: level >= 1.
func NewEnemy(name string, level int) Enemy {
	hp := 50 + 10*level
	return Enemy{
		Name:      name,
		Level:     level,
		Health:    hp,
		MaxHealth: hp,
		Attack:    5 + 2*level,
		Defense:   2 + int(math.Round(1.5*float64(level))),
	}
}

// Battle is one turn-based encounter.
type Battle struct {
	ID        string
	Enemy     Enemy
	Turn      int
	State     State
	Result    Result
	Defending bool
	log       []string
}

// Log returns the full retained battle log.
func (b *Battle) Log() []string {
	return append([]string(nil), b.log...)
}

// RecentLog returns the last LogShown log lines.
func (b *Battle) RecentLog() []string {
	if len(b.log) <= LogShown {
		return b.Log()
	}
	return append([]string(nil), b.log[len(b.log)-LogShown:]...)
}

func (b *Battle) logf(format string, args ...any) {
	b.log = append(b.log, fmt.Sprintf(format, args...))
	if len(b.log) > logCap {
		b.log = b.log[len(b.log)-logCap:]
	}
}

// Rewards describes the resolution of a battle.
type Rewards struct {
	Result       Result
	Experience   int
	Oromozi      int
	Loot         string
	LevelsGained int
	// OromoziLost is the currency actually lost on defeat.
	OromoziLost int
}

// Message renders r the way the battle screen announces it.
func (r Rewards) Message() string {
	switch r.Result {
	case ResultVictory:
		msg := fmt.Sprintf("Victory! Gained %d EXP, %d OROMOZI.", r.Experience, r.Oromozi)
		if r.Loot != "" {
			msg += "\nFound: " + r.Loot
		}
		return msg
	case ResultDefeat:
		return fmt.Sprintf("Defeat! Lost %d OROMOZI.", DefeatPenalty)
	case ResultFled:
		return "You escaped safely."
	default:
		return ""
	}
}

// Resolver runs battles using shared randomness and loot.
type Resolver struct {
	roller *dice.Roller
	loot   *loot.Resolver
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: roller, lootResolver and logger must be non-nil.
func NewResolver(roller *dice.Roller, lootResolver *loot.Resolver, logger *zap.Logger) *Resolver {
	return &Resolver{roller: roller, loot: lootResolver, logger: logger}
}

// Start generates an enemy near playerLevel and opens a battle.
//
// Precondition: playerLevel >= 1.
// Postcondition: the battle is in StatePlayerTurn with enemy level in
// [max(1, playerLevel-1), playerLevel+1].
func (r *Resolver) Start(playerLevel int) *Battle {
	level := max(1, playerLevel-1+r.roller.Intn("battle.enemy_level", 3))
	name := EnemyNames[r.roller.Intn("battle.enemy_name", len(EnemyNames))]
	b := &Battle{
		ID:    uuid.NewString(),
		Enemy: NewEnemy(name, level),
		State: StatePlayerTurn,
	}
	r.logger.Info("battle started",
		zap.String("battle_id", b.ID),
		zap.String("enemy", name),
		zap.Int("enemy_level", level),
		zap.Int("player_level", playerLevel),
	)
	return b
}

// FleeChance returns the clamped probability of a successful escape.
//
// Postcondition: result is in [0, 1].
func FleeChance(playerLevel, enemyLevel int) float64 {
	c := 0.4 + 0.1*float64(playerLevel-enemyLevel)
	return math.Max(0, math.Min(1, c))
}

// Act performs one player action and, unless the battle resolves, the enemy
// reply.
//
// Precondition: b, p.Stats and pack must be non-nil.
// Postcondition: returns ErrBattleOver without mutation on a resolved battle;
// when the battle resolves, b.State is StateResolved and the returned Rewards
// carry the result, otherwise b.State is StatePlayerTurn.
func (r *Resolver) Act(b *Battle, zone string, p Player, pack Pack, a Action) (Rewards, error) {
	if b.State == StateResolved {
		return Rewards{Result: b.Result}, ErrBattleOver
	}
	bs := p.BattleStats()
	b.Turn++

	switch a.Kind {
	case ActionAttack:
		dmg := max(1, bs.Attack-b.Enemy.Defense+r.roller.Between("battle.player_attack", -2, 2))
		b.Enemy.Health = max(0, b.Enemy.Health-dmg)
		b.logf("You attack for %d damage!", dmg)
	case ActionDefend:
		b.Defending = true
		b.logf("You take a defensive stance!")
	case ActionItem:
		if len(pack.HealingItems()) == 0 {
			b.logf("No usable items!")
			return Rewards{}, nil
		}
		if _, err := pack.Consume(a.Item, p.Stats); err != nil {
			b.Turn--
			return Rewards{}, fmt.Errorf("using %q: %w", a.Item, err)
		}
		b.logf("Used %s to restore health!", a.Item)
		// The enemy turn reads stats after the heal.
		bs = p.BattleStats()
	case ActionFlee:
		if r.roller.Chance("battle.flee", FleeChance(p.Stats.Level, b.Enemy.Level)) {
			b.logf("You successfully fled!")
			return r.resolve(b, zone, p, pack, ResultFled), nil
		}
		b.logf("Failed to escape!")
	default:
		b.Turn--
		return Rewards{}, fmt.Errorf("combat: unknown action %d", a.Kind)
	}

	if b.Enemy.Health <= 0 {
		return r.resolve(b, zone, p, pack, ResultVictory), nil
	}
	return r.enemyTurn(b, zone, p, pack, bs), nil
}

func (r *Resolver) enemyTurn(b *Battle, zone string, p Player, pack Pack, bs BattleStats) Rewards {
	b.State = StateEnemyTurn
	defense := bs.Defense
	if b.Defending {
		defense += DefendBonus
	}
	dmg := max(1, b.Enemy.Attack-defense+r.roller.Between("battle.enemy_attack", -2, 2))
	b.Defending = false

	if r.roller.Chance("battle.evasion", float64(bs.Evasion)/100) {
		b.logf("%s attacks but you dodge!", b.Enemy.Name)
	} else {
		p.Stats.ApplyDelta(stats.Health, -dmg)
		b.logf("%s attacks for %d damage!", b.Enemy.Name, dmg)
	}
	if p.Stats.Health <= 0 {
		return r.resolve(b, zone, p, pack, ResultDefeat)
	}
	b.State = StatePlayerTurn
	return Rewards{}
}

func (r *Resolver) resolve(b *Battle, zone string, p Player, pack Pack, result Result) Rewards {
	b.State = StateResolved
	b.Result = result
	out := Rewards{Result: result}
	switch result {
	case ResultVictory:
		out.Experience = 10 + 5*b.Enemy.Level
		out.Oromozi = 20 + 10*b.Enemy.Level
		p.Stats.ApplyDelta(stats.Experience, out.Experience)
		p.Stats.ApplyDelta(stats.Oromozi, out.Oromozi)
		if item, ok := r.loot.RollWithChance(zone, p.Stats.Level, VictoryLootChance); ok {
			out.Loot = item
			pack.Grant(item)
		}
		out.LevelsGained = progression.CheckLevelUp(p.Stats)
	case ResultDefeat:
		out.OromoziLost = -p.Stats.ApplyDelta(stats.Oromozi, -DefeatPenalty)
		p.Stats.Health = DefeatHealth
	}
	r.logger.Info("battle resolved",
		zap.String("battle_id", b.ID),
		zap.Stringer("result", result),
		zap.Int("turns", b.Turn),
		zap.Int("experience", out.Experience),
		zap.Int("oromozi", out.Oromozi),
		zap.String("loot", out.Loot),
		zap.Int("levels_gained", out.LevelsGained),
	)
	return out
}
