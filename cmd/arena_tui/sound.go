package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// soundPlayer 爆炸音效
// 未初始化时所有播放调用都是空操作
type soundPlayer struct {
	mixer       *beep.Mixer
	volume      float64 // 峰值增益 0.0 ~ 1.0
	initialized bool
}

func newSoundPlayer(volume float64) *soundPlayer {
	return &soundPlayer{mixer: &beep.Mixer{}, volume: volume}
}

// Init 初始化扬声器
func (s *soundPlayer) Init() error {
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// PlayExplosion 播放一段低频衰减音
func (s *soundPlayer) PlayExplosion() {
	if !s.initialized || s.volume <= 0 {
		return
	}
	tone, err := generators.SineTone(sampleRate, 70)
	if err != nil {
		return
	}
	streamer := beep.Take(sampleRate.N(250*time.Millisecond), &decay{streamer: tone, length: sampleRate.N(250 * time.Millisecond), peak: 0.5 * s.volume})

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close 关闭扬声器
func (s *soundPlayer) Close() {
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
}

// decay 线性衰减包络
type decay struct {
	streamer beep.Streamer
	length   int
	pos      int
	peak     float64
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.0
		if d.pos < d.length {
			gain = d.peak * (1 - float64(d.pos)/float64(d.length))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.streamer.Err()
}
