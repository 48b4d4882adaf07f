package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局玩家偏好
// 命令行参数优先于这里保存的值
type GameSettings struct {
	PlayerName    string  `yaml:"playerName"`    // 排行榜署名
	SoundEnabled  bool    `yaml:"soundEnabled"`  // 爆炸音效开关
	SoundVolume   float64 `yaml:"soundVolume"`   // 音效音量 0.0 ~ 1.0
	Fullscreen    bool    `yaml:"fullscreen"`    // 启动时是否全屏
	FramesPerTick int     `yaml:"framesPerTick"` // 每个逻辑 tick 的帧数，0 表示使用程序默认值
}

// 设置的默认值
const (
	DefaultPlayerName  = "player"
	DefaultSoundVolume = 0.8
)

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		PlayerName:   DefaultPlayerName,
		SoundEnabled: true,
		SoundVolume:  DefaultSoundVolume,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 加载失败不是致命错误，此时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上解码，缺失字段保留默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetPlayerName 设置排行榜署名，空白名字回落到默认值
func (sm *SettingsManager) SetPlayerName(name string) {
	sm.settings.PlayerName = normalizeName(name)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetFramesPerTick 设置 tick 节奏，负数视为 0
func (sm *SettingsManager) SetFramesPerTick(frames int) {
	if frames < 0 {
		frames = 0
	}
	sm.settings.FramesPerTick = frames
}

func (s *GameSettings) normalize() {
	s.PlayerName = normalizeName(s.PlayerName)
	s.SoundVolume = clampVolume(s.SoundVolume)
	if s.FramesPerTick < 0 {
		s.FramesPerTick = 0
	}
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return name
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
