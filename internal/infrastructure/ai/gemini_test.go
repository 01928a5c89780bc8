package ai

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCMToWav_Header(t *testing.T) {
	pcm := make([]byte, 4800) // 0.1 秒的 24kHz 单声道 16bit 静音
	wav := pcmToWav(pcm, 24000, 1, 16)

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))

	// RIFF 块大小 = 文件总长 − 8
	assert.Equal(t, uint32(len(wav)-8), binary.LittleEndian.Uint32(wav[4:8]))
	// 采样率与声道数
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	// data 块长度与载荷一致
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestComplete_NilClientDegrades(t *testing.T) {
	var c *Client
	_, err := c.Complete(context.Background(), "soru")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = c.SynthesizeSpeech(context.Background(), "metin")
	assert.ErrorIs(t, err, ErrUnavailable)
}
