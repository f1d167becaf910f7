package sound

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Every decoded or synthesized buffer is signed 16 bit little endian stereo.
const (
	ChannelCount   = 2
	BytesPerSample = 2 * ChannelCount
)

type decodeStream interface {
	io.ReadSeeker
	Length() int64
}

// Decode decodes an mp3, ogg vorbis or wav file to 16 bit stereo PCM
// at sampleRate. audioFileType is a file extension like ".ogg".
func Decode(
	audioFile []byte,
	audioFileType string,
	sampleRate int,
) ([]byte, error) {
	var stream decodeStream
	var err error

	// NOTE: this is not a perfect way to determine the audio file type
	// since audio file can be in different container.
	//
	// But it is good enough for what we are trying to do
	switch strings.ToLower(audioFileType) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(audioFile))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(audioFile))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(audioFile))
	default:
		return nil, fmt.Errorf("unsupported audio type %q", audioFileType)
	}
	if err != nil {
		return nil, err
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}

	return decoded, nil
}

// DecodeFile is Decode with the type taken from path's extension.
func DecodeFile(path string, audioFile []byte, sampleRate int) ([]byte, error) {
	decoded, err := Decode(audioFile, filepath.Ext(path), sampleRate)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return decoded, nil
}
