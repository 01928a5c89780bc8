package ai

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"auditsystem/internal/config"

	"google.golang.org/genai"
)

// ============================================================================
// Gemini 客户端封装
// ============================================================================
//
// AI 能力在本系统里是"锦上添花"：风险项解读、报告草稿、对话问答、语音
// 播报都走这里。AI 不可用时核心的分析流程照常工作，所以初始化失败
// 只降级，不拦启动。
//
// API Key 从环境变量 GEMINI_API_KEY 读取（genai 客户端的默认行为），
// 不落配置文件。

var (
	ErrUnavailable     = errors.New("AI 服务未配置")
	ErrEmptyCompletion = errors.New("AI 返回了空内容")
)

// Client Gemini 客户端
type Client struct {
	client   *genai.Client
	model    string
	ttsModel string
	ttsVoice string
	timeout  time.Duration
}

var Gemini *Client

// InitGemini 初始化 Gemini 客户端
//
// 【关键点】没有 API Key 时不 Fatal，留 nil 让上层返回"AI 服务未配置"
func InitGemini(cfg *config.GeminiConfig) *Client {
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Println("GEMINI_API_KEY 未设置，AI 功能降级为不可用")
		return nil
	}

	client, err := genai.NewClient(context.Background(), nil)
	if err != nil {
		log.Printf("创建 Gemini 客户端失败，AI 功能降级: %v", err)
		return nil
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	Gemini = &Client{
		client:   client,
		model:    cfg.Model,
		ttsModel: cfg.TTSModel,
		ttsVoice: cfg.TTSVoice,
		timeout:  timeout,
	}
	log.Println("Gemini 客户端创建成功")
	return Gemini
}

// Complete 单轮文本生成
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("调用 Gemini 失败: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// SynthesizeSpeech 文本转语音，返回 WAV 字节流
//
// Gemini TTS 返回的是裸 PCM（24kHz 单声道 16bit），浏览器播放需要
// WAV 容器，这里补上 RIFF 头再返回。
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	if c == nil {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: c.ttsVoice,
				},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("调用 Gemini TTS 失败: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyCompletion
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.InlineData == nil || len(part.InlineData.Data) == 0 {
		return nil, ErrEmptyCompletion
	}

	return pcmToWav(part.InlineData.Data, 24000, 1, 16), nil
}

// pcmToWav 给裸 PCM 数据加 RIFF/WAVE 头
func pcmToWav(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // fmt 块长度
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM 编码
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
