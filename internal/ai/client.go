// Package ai 文本生成能力层：同步生成与按片段拉取的流式生成。
package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"conovel/internal/ai/component"
	"conovel/internal/config"
)

var (
	// ErrUpstream 生成服务调用失败
	ErrUpstream = errors.New("generation upstream failure")
	// ErrEmptyResult 生成服务返回空内容
	ErrEmptyResult = errors.New("generation returned empty result")
)

// Generator 文本生成器
type Generator interface {
	// Generate 一次性生成完整文本
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	// GenerateStream 返回按顺序产出文本片段的流，调用方负责 Close
	GenerateStream(ctx context.Context, prompt string, maxTokens int) (FragmentStream, error)
	// Model 生成所用模型名
	Model() string
}

// FragmentStream 拉取式片段序列，结束时 Recv 返回 io.EOF
type FragmentStream interface {
	Recv() (string, error)
	Close()
}

// NewGenerator 按配置创建生成器；未配置 API Key 时使用 mock 模式
func NewGenerator(ctx context.Context, cfg *config.AIConfig) (Generator, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("AI API key not configured, using mock mode")
		return NewMockGenerator(), nil
	}

	chatModel, modelName, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	log.Info().Str("provider", cfg.Provider).Str("model", modelName).Msg("AI generator initialized")
	return NewEinoGenerator(chatModel, modelName), nil
}

// Collect 读完整个片段流并拼接（流关闭由调用方负责）
func Collect(stream FragmentStream) (string, error) {
	var out []byte
	for {
		frag, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return string(out), nil
		}
		if err != nil {
			return string(out), err
		}
		out = append(out, frag...)
	}
}
