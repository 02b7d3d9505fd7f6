// Package config loads the engine's runtime configuration: env vars override
// an optional JSON file, which overrides hardcoded defaults (spec §6,
// ported from original_source/config_validator.py's layered precedence).
// Struct tags are parsed with github.com/caarlos0/env/v11, keeping the
// teacher's "env vars are the source of truth, validated at startup" idiom
// while switching from hand-rolled os.LookupEnv parsing to the ecosystem
// library the corpus carries for it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// AISettings configures the model backend (spec §6 ai_settings).
type AISettings struct {
	ModelName       string  `env:"AI_MODEL_NAME" json:"model_name"`
	OllamaBaseURL   string  `env:"AI_OLLAMA_BASE_URL" json:"ollama_base_url"`
	Temperature     float64 `env:"AI_TEMPERATURE" json:"temperature"`
	MaxTokens       int     `env:"AI_MAX_TOKENS" json:"max_tokens"`
	ThinkingMode    bool    `env:"AI_THINKING_MODE" json:"thinking_mode"`
	ContextLength   int     `env:"AI_CONTEXT_LENGTH" json:"context_length"`
	PresencePenalty float64 `env:"AI_PRESENCE_PENALTY" json:"presence_penalty"`
}

// GameSettings configures table size, roles, and pacing (spec §6 game_settings).
type GameSettings struct {
	TotalPlayers   int        `env:"GAME_TOTAL_PLAYERS" json:"total_players"`
	Roles          RoleCounts `json:"roles"`
	MaxRounds      int        `env:"GAME_MAX_ROUNDS" json:"max_rounds"` // 0 = unlimited
	DiscussionTime int        `env:"GAME_DISCUSSION_TIME" json:"discussion_time"`
}

// RoleCounts is game_settings.roles; its sum must equal TotalPlayers.
type RoleCounts struct {
	Villager int `json:"villager"`
	Werewolf int `json:"werewolf"`
	Seer     int `json:"seer"`
	Witch    int `json:"witch"`
}

// ObservationDelays configures per-event UI pacing (spec §6 ui_settings).
type ObservationDelays struct {
	PhaseTransition   float64 `env:"UI_DELAY_PHASE_TRANSITION" json:"phase_transition"`
	ActionResult      float64 `env:"UI_DELAY_ACTION_RESULT" json:"action_result"`
	DeathAnnouncement float64 `env:"UI_DELAY_DEATH_ANNOUNCEMENT" json:"death_announcement"`
	Speech            float64 `env:"UI_DELAY_SPEECH" json:"speech"`
	VotingResult      float64 `env:"UI_DELAY_VOTING_RESULT" json:"voting_result"`
}

// UISettings configures observer display only — never consulted by agent
// policies (spec §6 ui_settings; hide_roles_from_ai must stay true in practice).
type UISettings struct {
	DisplayThinking    bool              `env:"UI_DISPLAY_THINKING" json:"display_thinking"`
	ShowRolesToUser    bool              `env:"UI_SHOW_ROLES_TO_USER" json:"show_roles_to_user"`
	HideRolesFromAI    bool              `env:"UI_HIDE_ROLES_FROM_AI" json:"hide_roles_from_ai"`
	RevealRolesOnDeath bool              `env:"UI_REVEAL_ROLES_ON_DEATH" json:"reveal_roles_on_death"`
	ObservationDelays  ObservationDelays `json:"observation_delays"`
}

// MemorySettings configures per-stream memory caps and speech shaping
// (spec §6 memory_settings).
type MemorySettings struct {
	MaxMemoryEvents             int  `env:"MEMORY_MAX_EVENTS" json:"max_memory_events"`
	NightDiscussionMemoryLimit  int  `env:"MEMORY_NIGHT_DISCUSSION_LIMIT" json:"night_discussion_memory_limit"`
	NightThinkingMemoryLimit    int  `env:"MEMORY_NIGHT_THINKING_LIMIT" json:"night_thinking_memory_limit"`
	MaxSpeechLength             int  `env:"MEMORY_MAX_SPEECH_LENGTH" json:"max_speech_length"`
	SpeechContentTruncate       bool `env:"MEMORY_SPEECH_CONTENT_TRUNCATE" json:"speech_content_truncate"`
	IncludeNightContextInSpeech bool `env:"MEMORY_INCLUDE_NIGHT_CONTEXT_IN_SPEECH" json:"include_night_context_in_speech"`
	MemoryRetentionRounds       int  `env:"MEMORY_RETENTION_ROUNDS" json:"memory_retention_rounds"`
}

// Config is the engine's full runtime configuration.
type Config struct {
	AI     AISettings
	Game   GameSettings
	UI     UISettings
	Memory MemorySettings

	// VoteTimeout bounds a single Vote call (spec §5 default 30s); not part
	// of the spec's named settings blocks but needed to drive internal/voting.
	VoteTimeoutSeconds int `env:"ENGINE_VOTE_TIMEOUT_SECONDS" envDefault:"30"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Default mirrors config_validator.py's hardcoded defaults.
func Default() *Config {
	return &Config{
		AI: AISettings{
			ModelName:       "qwen3:0.6b",
			OllamaBaseURL:   "http://localhost:11434",
			Temperature:     1.1,
			MaxTokens:       800,
			ThinkingMode:    true,
			ContextLength:   4096,
			PresencePenalty: 1.5,
		},
		Game: GameSettings{
			TotalPlayers: 7,
			Roles:        RoleCounts{Villager: 3, Werewolf: 2, Seer: 1, Witch: 1},
			DiscussionTime: 60,
		},
		UI: UISettings{
			DisplayThinking:    false,
			ShowRolesToUser:    true,
			HideRolesFromAI:    true,
			RevealRolesOnDeath: false,
		},
		Memory: MemorySettings{
			MaxMemoryEvents:            50,
			NightDiscussionMemoryLimit: 20,
			NightThinkingMemoryLimit:   20,
			MaxSpeechLength:            500,
			SpeechContentTruncate:      true,
			MemoryRetentionRounds:      0, // 0 = keep everything
		},
		VoteTimeoutSeconds: 30,
		LogLevel:           "info",
	}
}

// Load builds the layered config: defaults, then an optional JSON file at
// jsonPath (ignored if empty or missing), then env var overrides — matching
// config_validator.py's precedence (env > file > defaults) — and then runs
// Validate, returning its diagnostic if the merged result is invalid.
func Load(jsonPath string) (*Config, error) {
	cfg := Default()

	if jsonPath != "" {
		if err := mergeJSONFile(cfg, jsonPath); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	// env recurses into nested structs automatically, so a single call
	// covers AI/Game/UI/Memory plus the top-level fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, cfg)
}

// Validate checks config sanity, returning a diagnostic enumerating every
// offending key at once (spec §7: "engine refuses to start and returns a
// diagnostic report enumerating offending keys").
func (c *Config) Validate() error {
	var problems []string

	if c.Game.TotalPlayers < 5 || c.Game.TotalPlayers > 12 {
		problems = append(problems, "game_settings.total_players must be 5-12")
	}
	roleSum := c.Game.Roles.Villager + c.Game.Roles.Werewolf + c.Game.Roles.Seer + c.Game.Roles.Witch
	if roleSum != c.Game.TotalPlayers {
		problems = append(problems, fmt.Sprintf("game_settings.roles must sum to total_players (%d != %d)", roleSum, c.Game.TotalPlayers))
	}
	if c.Game.MaxRounds < 0 || c.Game.MaxRounds > 100 {
		problems = append(problems, "game_settings.max_rounds must be 0 (unlimited) or 1-100")
	}
	if !c.UI.HideRolesFromAI {
		problems = append(problems, "ui_settings.hide_roles_from_ai must be true in practice")
	}
	if c.VoteTimeoutSeconds <= 0 {
		problems = append(problems, "engine vote timeout must be > 0")
	}

	if len(problems) > 0 {
		msg := "invalid configuration:"
		for _, p := range problems {
			msg += "\n  - " + p
		}
		return errors.New(msg)
	}
	return nil
}
