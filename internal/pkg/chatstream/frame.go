package chatstream

import (
	"bytes"
	"encoding/json"
)

// 帧中的固定取值
const (
	ObjectChunk       = "chat.completion.chunk"
	RoleAssistant     = "assistant"
	FinishReasonStop  = "stop"
	ErrTypeUpstream   = "upstream_error"
	ErrTypeTimeout    = "timeout_error"
	ErrCodeGeneration = "generation_failed"
	ErrCodeTimeout    = "timeout"
)

// Frame 一个流式事件帧（对应一条 SSE data）
// 错误帧只有 error 字段，没有 choices 与 usage。
type Frame struct {
	ID      string      `json:"id"`
	Object  string      `json:"object"`
	Created int64       `json:"created"`
	Model   string      `json:"model"`
	Choices []Choice    `json:"choices,omitempty"`
	Usage   *Usage      `json:"usage,omitempty"`
	Error   *FrameError `json:"error,omitempty"`
}

// Choice 增量选项，流式输出时只有一个
type Choice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// Delta 增量内容；起始帧的 content 为 null
type Delta struct {
	Content *string `json:"content"`
	Role    string  `json:"role,omitempty"`
}

// Usage 字符计数（按 token 字段名输出）
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FrameError 错误帧内容
type FrameError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Content 帧携带的文本，起始帧与错误帧返回空串
func (f *Frame) Content() string {
	if len(f.Choices) == 0 || f.Choices[0].Delta.Content == nil {
		return ""
	}
	return *f.Choices[0].Delta.Content
}

// IsStart 起始帧
func (f *Frame) IsStart() bool {
	return len(f.Choices) == 1 && f.Choices[0].Delta.Content == nil && f.Choices[0].FinishReason == nil
}

// IsDone 结束帧
func (f *Frame) IsDone() bool {
	return len(f.Choices) == 1 && f.Choices[0].FinishReason != nil
}

// IsError 错误帧
func (f *Frame) IsError() bool {
	return f.Error != nil
}

// Marshal 编码为单行 JSON，不转义 HTML 与非 ASCII 字符
func (f *Frame) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
