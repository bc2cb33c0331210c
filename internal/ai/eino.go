package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = "你是一位经验丰富的中文网络小说作家，擅长根据要求创作标题、大纲和章节正文。只输出创作内容本身，不要附加解释。"

// EinoGenerator 基于 eino ChatModel 的生成器
type EinoGenerator struct {
	chatModel model.BaseChatModel
	modelName string
}

// NewEinoGenerator 创建生成器
func NewEinoGenerator(chatModel model.BaseChatModel, modelName string) *EinoGenerator {
	return &EinoGenerator{chatModel: chatModel, modelName: modelName}
}

// Model 模型名
func (g *EinoGenerator) Model() string {
	return g.modelName
}

// Generate 同步生成
func (g *EinoGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.chatModel.Generate(ctx, buildMessages(prompt), callOptions(maxTokens)...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", ErrEmptyResult
	}
	return content, nil
}

// GenerateStream 流式生成
func (g *EinoGenerator) GenerateStream(ctx context.Context, prompt string, maxTokens int) (FragmentStream, error) {
	reader, err := g.chatModel.Stream(ctx, buildMessages(prompt), callOptions(maxTokens)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return &einoStream{reader: reader}, nil
}

func buildMessages(prompt string) []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	}
}

func callOptions(maxTokens int) []model.Option {
	if maxTokens <= 0 {
		return nil
	}
	return []model.Option{model.WithMaxTokens(maxTokens)}
}

// einoStream 把 schema.StreamReader 适配为 FragmentStream，跳过没有文本的消息块
type einoStream struct {
	reader *schema.StreamReader[*schema.Message]
}

func (s *einoStream) Recv() (string, error) {
	for {
		msg, err := s.reader.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if msg == nil || msg.Content == "" {
			continue
		}
		return msg.Content, nil
	}
}

func (s *einoStream) Close() {
	s.reader.Close()
}
