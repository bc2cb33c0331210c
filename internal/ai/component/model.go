// Package component 按配置创建 eino ChatModel。
package component

import (
	"context"
	"errors"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"conovel/internal/config"
)

// 支持的 Provider
const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
	ProviderArk    = "ark"
)

// Providers 全部支持的 Provider，顺序固定
var Providers = []string{ProviderOpenAI, ProviderAzure, ProviderArk}

// 各 Provider 未配置时的默认值
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultArkModel    = "doubao-seed-1-6-flash-250615"
	DefaultArkBaseURL  = "https://ark.cn-beijing.volces.com/api/v3"
)

// Settings 补全默认值后的模型参数，Model 即生成结果中记录的模型名
type Settings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature *float32
	TopP        *float32
	MaxTokens   *int
}

// Resolve 补全 Provider 默认值；azure 必须给出 base_url 与 model
func Resolve(cfg *config.AIConfig) (*Settings, error) {
	s := &Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
	if cfg.Options.Temperature > 0 {
		t := float32(cfg.Options.Temperature)
		s.Temperature = &t
	}
	if cfg.Options.TopP > 0 {
		p := float32(cfg.Options.TopP)
		s.TopP = &p
	}
	if cfg.Options.MaxTokens > 0 {
		n := cfg.Options.MaxTokens
		s.MaxTokens = &n
	}

	switch s.Provider {
	case ProviderOpenAI, "":
		s.Provider = ProviderOpenAI
		if s.Model == "" {
			s.Model = DefaultOpenAIModel
		}
	case ProviderAzure:
		if s.BaseURL == "" || s.Model == "" {
			return nil, errors.New("azure provider requires ai.base_url and ai.model")
		}
	case ProviderArk:
		if s.Model == "" {
			s.Model = DefaultArkModel
		}
		if s.BaseURL == "" {
			s.BaseURL = DefaultArkBaseURL
		}
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
	return s, nil
}

// NewChatModel 创建 ChatModel，同时返回实际使用的模型名
func NewChatModel(ctx context.Context, cfg *config.AIConfig) (model.BaseChatModel, string, error) {
	s, err := Resolve(cfg)
	if err != nil {
		return nil, "", err
	}

	var cm model.BaseChatModel
	switch s.Provider {
	case ProviderArk:
		cm, err = newArkChatModel(ctx, s)
	default:
		cm, err = newOpenAIChatModel(ctx, s)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s chat model: %w", s.Provider, err)
	}
	return cm, s.Model, nil
}

// newOpenAIChatModel OpenAI 及兼容接口，azure 走同一实现
func newOpenAIChatModel(ctx context.Context, s *Settings) (model.BaseChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		Model:       s.Model,
		APIKey:      s.APIKey,
		BaseURL:     s.BaseURL,
		ByAzure:     s.Provider == ProviderAzure,
		Temperature: s.Temperature,
		TopP:        s.TopP,
		MaxTokens:   s.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// newArkChatModel 火山方舟
func newArkChatModel(ctx context.Context, s *Settings) (model.BaseChatModel, error) {
	cm, err := arkext.NewChatModel(ctx, &arkext.ChatModelConfig{
		Model:       s.Model,
		APIKey:      s.APIKey,
		BaseURL:     s.BaseURL,
		Temperature: s.Temperature,
		TopP:        s.TopP,
		MaxTokens:   s.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}
