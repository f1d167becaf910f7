package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"shaderorb/orb"
	"shaderorb/sound"
)

const SampleRate = 44100

const SoundClick = "click"

var TheSoundManager struct {
	Context *oto.Context

	volume float64

	SoundEffects map[string][]byte

	// idle players are reused, busy ones are left alone
	players map[string][]*Player

	contextReadyChan chan struct{}
	contextReady     bool
}

// InitSound opens the audio device. On failure sound stays off
// and every Play call is a no-op.
func InitSound(volume float64) error {
	sm := &TheSoundManager

	sm.volume = orb.Clamp(volume, 0, 1)
	sm.SoundEffects = make(map[string][]byte)
	sm.players = make(map[string][]*Player)

	contextOp := oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: sound.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Millisecond * 50,
	}

	var err error
	sm.Context, sm.contextReadyChan, err = oto.NewContext(&contextOp)
	if err != nil {
		sm.Context = nil
		return fmt.Errorf("couldn't initialize sound: %w", err)
	}

	return nil
}

// LoadClickSound decodes path as the focus change click.
// An empty path or any failure falls back to the synthesized click.
func LoadClickSound(path string) {
	sm := &TheSoundManager

	sm.SoundEffects[SoundClick] = sound.SynthClick(SampleRate)

	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		WarnLogger.Printf("click sound : %v, using the built-in click", err)
		return
	}

	decoded, err := sound.DecodeFile(path, file, SampleRate)
	if err != nil {
		WarnLogger.Printf("click sound : %v, using the built-in click", err)
		return
	}

	sm.SoundEffects[SoundClick] = decoded
}

func UpdateSound() {
	sm := &TheSoundManager

	if sm.Context != nil && !sm.contextReady {
		select {
		case <-sm.contextReadyChan:
			sm.contextReady = true
		default:
			// pass
		}
	}
}

func IsSoundReady() bool {
	sm := &TheSoundManager
	return sm.Context != nil && sm.contextReady
}

func PlaySoundBytes(name string, volume float64) {
	if !IsSoundReady() {
		return
	}

	sm := &TheSoundManager

	for _, player := range sm.players[name] {
		if !player.IsPlaying() {
			player.SetVolume(volume)
			player.Seek(0, io.SeekStart)
			player.Play()
			return
		}
	}

	// all players are busy, create new one
	audioBytes, ok := sm.SoundEffects[name]
	if !ok {
		WarnLogger.Printf("no sound named %q", name)
		return
	}

	player := &Player{
		player: sm.Context.NewPlayer(bytes.NewReader(audioBytes)),
	}
	player.SetVolume(volume)
	player.Play()

	sm.players[name] = append(sm.players[name], player)
}

// CloseSound closes every player. The oto context itself lives until exit.
func CloseSound() {
	sm := &TheSoundManager

	for name, players := range sm.players {
		for _, p := range players {
			if err := p.player.Close(); err != nil {
				WarnLogger.Printf("closing %s player : %v", name, err)
			}
		}
	}
	sm.players = make(map[string][]*Player)

	if sm.Context != nil {
		if err := sm.Context.Suspend(); err != nil {
			WarnLogger.Printf("suspending audio : %v", err)
		}
	}
}

type Player struct {
	player *oto.Player
	volume float64
}

func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

func (p *Player) Play() {
	p.player.Play()
}

func (p *Player) Seek(offset int64, whence int) int64 {
	// seeking an in-memory reader doesn't fail
	pos, _ := p.player.Seek(offset, whence)
	return pos
}

func (p *Player) SetVolume(volume float64) {
	p.volume = orb.Clamp(volume, 0, 1)
	p.player.SetVolume(p.volume * TheSoundManager.volume)
}
