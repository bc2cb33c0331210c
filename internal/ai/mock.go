package ai

import (
	"context"
	"io"
	"strings"
)

// MockGenerator 未配置模型时使用的本地生成器，输出固定模板文本
type MockGenerator struct {
	// FragmentSize 流式输出时每个片段的字符数
	FragmentSize int
}

// NewMockGenerator 创建 mock 生成器
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{FragmentSize: 8}
}

// Model 模型名
func (g *MockGenerator) Model() string {
	return "mock"
}

// Generate 返回基于提示词的模板文本
func (g *MockGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return mockContent(prompt), nil
}

// GenerateStream 把模板文本按 FragmentSize 切片输出
func (g *MockGenerator) GenerateStream(ctx context.Context, prompt string, maxTokens int) (FragmentStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := g.FragmentSize
	if size <= 0 {
		size = 8
	}
	return NewSliceStream(splitRunes(mockContent(prompt), size)...), nil
}

func mockContent(prompt string) string {
	switch {
	case strings.Contains(prompt, "正文"):
		return "夜色渐深，城中灯火次第熄灭。他独自站在窗前，望着远处起伏的山影，心中隐约明白，明日之后，一切都将不同。"
	case strings.Contains(prompt, "标题"):
		return "1. 星河长夜\n2. 剑指苍穹\n3. 万古长青\n4. 风起云涌\n5. 问道天涯\n6. 烟雨江湖\n7. 逆流而上\n8. 破晓之光\n9. 山海有归\n10. 浮生若梦"
	case strings.Contains(prompt, "大纲"):
		return "【故事梗概】\n主角自微末中崛起，历经磨难，终成一代传奇。\n\n第1章 初入江湖\n第2章 暗流涌动\n第3章 绝境逢生"
	default:
		return "（mock）" + prompt
	}
}

func splitRunes(s string, size int) []string {
	runes := []rune(s)
	out := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}

// SliceStream 依次产出给定片段，最后可选地返回一个错误
type SliceStream struct {
	fragments []string
	err       error
	pos       int
	closed    bool
}

// NewSliceStream 创建片段流
func NewSliceStream(fragments ...string) *SliceStream {
	return &SliceStream{fragments: fragments}
}

// FailAfter 片段耗尽后返回 err 而不是 io.EOF
func (s *SliceStream) FailAfter(err error) *SliceStream {
	s.err = err
	return s
}

// Recv 读取下一个片段
func (s *SliceStream) Recv() (string, error) {
	if s.pos < len(s.fragments) {
		frag := s.fragments[s.pos]
		s.pos++
		return frag, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

// Close 标记关闭
func (s *SliceStream) Close() {
	s.closed = true
}

// Closed 是否已关闭
func (s *SliceStream) Closed() bool {
	return s.closed
}
