package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tomz197/planetwars/internal/ai"
	loopconfig "github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/sound"
)

// SettingsFile is the settings file name looked up in the settings directory.
const SettingsFile = "planetwars.yaml"

// EnvPrefix prefixes environment overrides, e.g. PLANETWARS_DIFFICULTY=hard.
const EnvPrefix = "PLANETWARS"

const (
	keyPlayerName = "player_name"
	keyMapSize    = "map_size"
	keyDifficulty = "difficulty"
	keySoundPack  = "sound_pack"
	keyScoreDB    = "score_db"
)

// Settings are the persisted player preferences.
type Settings struct {
	PlayerName string
	MapSize    mapgen.Size
	Difficulty ai.Difficulty
	SoundPack  string
	ScoreDB    string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		PlayerName: "Player",
		MapSize:    mapgen.Medium,
		Difficulty: ai.Medium,
		SoundPack:  sound.DefaultPack,
		ScoreDB:    "scores.db",
	}
}

func newViper(dir string) *viper.Viper {
	d := DefaultSettings()
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(SettingsFile, filepath.Ext(SettingsFile)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyPlayerName, d.PlayerName)
	v.SetDefault(keyMapSize, d.MapSize.String())
	v.SetDefault(keyDifficulty, d.Difficulty.String())
	v.SetDefault(keySoundPack, d.SoundPack)
	v.SetDefault(keyScoreDB, d.ScoreDB)
	return v
}

// Load reads settings from planetwars.yaml in dir, if present, overlaid with
// PLANETWARS_* environment variables. Missing keys take their defaults.
// Unknown map sizes, difficulties or sound packs are errors.
func Load(dir string) (Settings, error) {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return DefaultSettings(), fmt.Errorf("read settings in %s: %w", dir, err)
		}
	}

	s := Settings{
		PlayerName: SanitizeName(v.GetString(keyPlayerName)),
		SoundPack:  v.GetString(keySoundPack),
		ScoreDB:    v.GetString(keyScoreDB),
	}
	if s.PlayerName == "" {
		s.PlayerName = DefaultSettings().PlayerName
	}

	var err error
	if s.MapSize, err = mapgen.ParseSize(v.GetString(keyMapSize)); err != nil {
		return DefaultSettings(), fmt.Errorf("settings: %w", err)
	}
	if s.Difficulty, err = ai.ParseDifficulty(v.GetString(keyDifficulty)); err != nil {
		return DefaultSettings(), fmt.Errorf("settings: %w", err)
	}
	if s.SoundPack, err = sound.ParsePack(s.SoundPack); err != nil {
		return DefaultSettings(), fmt.Errorf("settings: %w", err)
	}
	return s, nil
}

// Save writes s to planetwars.yaml in dir.
func Save(dir string, s Settings) error {
	v := viper.New()
	v.Set(keyPlayerName, s.PlayerName)
	v.Set(keyMapSize, s.MapSize.String())
	v.Set(keyDifficulty, s.Difficulty.String())
	v.Set(keySoundPack, s.SoundPack)
	v.Set(keyScoreDB, s.ScoreDB)

	path := filepath.Join(dir, SettingsFile)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// SanitizeName trims a player name and cuts it to MaxUsernameLength runes.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > loopconfig.MaxUsernameLength {
		name = string(r[:loopconfig.MaxUsernameLength])
	}
	return name
}
