package game

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultLeaderboardCapacity 排行榜默认保留的记录数
const DefaultLeaderboardCapacity = 10

// 存储路径常量
const (
	leaderboardObject   = "leaderboard"
	leaderboardProperty = "scores"
)

// LeaderboardEntry 一局结束后的成绩
type LeaderboardEntry struct {
	RoundID    string    `yaml:"roundId"`
	Name       string    `yaml:"name"`
	Score      int       `yaml:"score"`
	Result     string    `yaml:"result"` // gamewon / gameover
	Kills      int       `yaml:"kills"`
	Ticks      int       `yaml:"ticks"`
	Seed       int64     `yaml:"seed"`
	RecordedAt time.Time `yaml:"recordedAt"`
}

type leaderboardData struct {
	Entries []LeaderboardEntry `yaml:"entries"`
}

// Leaderboard 持久化的高分榜
// 按分数降序排列，同分时先记录的在前；超出容量的记录被丢弃
type Leaderboard struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	capacity     int
	entries      []LeaderboardEntry
	now          func() time.Time
}

// NewLeaderboard 创建排行榜并加载已保存的记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - capacity: 保留的记录数，<= 0 时使用 DefaultLeaderboardCapacity
//
// 加载失败只记录日志并从空榜开始
func NewLeaderboard(gdataManager *gdata.Manager, capacity int) *Leaderboard {
	if capacity <= 0 {
		capacity = DefaultLeaderboardCapacity
	}
	lb := &Leaderboard{
		gdataManager: gdataManager,
		capacity:     capacity,
		now:          time.Now,
	}

	if err := lb.Load(); err != nil {
		log.Printf("[Leaderboard] Warning: Failed to load leaderboard: %v (starting empty)", err)
	}
	return lb
}

// Load 从 gdata 加载记录
func (lb *Leaderboard) Load() error {
	lb.entries = nil
	if lb.gdataManager == nil {
		return nil
	}
	if !lb.gdataManager.ObjectPropExists(leaderboardObject, leaderboardProperty) {
		return nil
	}

	data, err := lb.gdataManager.LoadObjectProp(leaderboardObject, leaderboardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var loaded leaderboardData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	lb.entries = loaded.Entries
	lb.normalize()
	log.Printf("[Leaderboard] Loaded %d entries", len(lb.entries))
	return nil
}

// Save 保存记录到 gdata；降级模式下直接返回 nil
func (lb *Leaderboard) Save() error {
	if lb.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(leaderboardData{Entries: lb.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := lb.gdataManager.SaveObjectProp(leaderboardObject, leaderboardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// Record 记录一局成绩并保存
// RoundID 为空时生成新的 UUID，RecordedAt 为零值时使用当前时间
//
// 返回：
//   - int: 记录的名次（从 1 开始），未进入榜单时返回 0
//   - error: 保存失败时返回错误（内存中的榜单已更新）
func (lb *Leaderboard) Record(entry LeaderboardEntry) (int, error) {
	if entry.RoundID == "" {
		entry.RoundID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = lb.now()
	}

	lb.entries = append(lb.entries, entry)
	lb.normalize()

	rank := 0
	for i, e := range lb.entries {
		if e.RoundID == entry.RoundID {
			rank = i + 1
			break
		}
	}
	log.Printf("[Leaderboard] Recorded %s: score=%d, rank=%d", entry.RoundID, entry.Score, rank)

	if err := lb.Save(); err != nil {
		return rank, err
	}
	return rank, nil
}

// Top 返回前 n 名的副本；n <= 0 或超过记录数时返回全部
func (lb *Leaderboard) Top(n int) []LeaderboardEntry {
	if n <= 0 || n > len(lb.entries) {
		n = len(lb.entries)
	}
	top := make([]LeaderboardEntry, n)
	copy(top, lb.entries[:n])
	return top
}

// Len 返回记录数
func (lb *Leaderboard) Len() int {
	return len(lb.entries)
}

// normalize 排序并截断到容量
func (lb *Leaderboard) normalize() {
	sort.SliceStable(lb.entries, func(i, j int) bool {
		if lb.entries[i].Score != lb.entries[j].Score {
			return lb.entries[i].Score > lb.entries[j].Score
		}
		return lb.entries[i].RecordedAt.Before(lb.entries[j].RecordedAt)
	})
	if len(lb.entries) > lb.capacity {
		lb.entries = lb.entries[:lb.capacity]
	}
}

// FormatEntries 把记录整理为展示用的文本行
// 名次从 1 开始；RoundID 等于 highlight 的记录行首标记为 ">"
func FormatEntries(entries []LeaderboardEntry, highlight string) []string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		mark := " "
		if highlight != "" && e.RoundID == highlight {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%2d. %-*s %6d  %s",
			mark, i+1, maxNameWidth, truncateName(e.Name, maxNameWidth), e.Score, resultLabel(e.Result)))
	}
	return lines
}

// maxNameWidth 展示时名字的最大宽度（按字符计）
const maxNameWidth = 12

func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width])
}

func resultLabel(result string) string {
	switch result {
	case StateGameWon.String():
		return "WIN"
	case StateGameOver.String():
		return "LOSS"
	default:
		return result
	}
}
