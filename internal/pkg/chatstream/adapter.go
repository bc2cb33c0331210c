// Package chatstream 把生成器产出的文本片段转换为 chat.completion.chunk 格式的事件帧序列。
//
// 帧序列：一个起始帧（content 为 null），每个片段一个增量帧，最后一个结束帧
// （content 为空串，finish_reason 为 stop）。生成出错时发出一个错误帧并结束，不再发送结束帧。
package chatstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"conovel/internal/pkg/id"
)

// ErrPullTimeout 单个片段拉取超时
var ErrPullTimeout = errors.New("fragment pull timed out")

// Source 拉取式片段来源，结束时 Recv 返回 io.EOF
type Source interface {
	Recv() (string, error)
	Close()
}

// Sink 帧的消费者；Emit 返回后才会拉取下一个片段
type Sink interface {
	Emit(ctx context.Context, f *Frame) error
}

// SinkFunc 函数形式的 Sink
type SinkFunc func(ctx context.Context, f *Frame) error

// Emit 实现 Sink
func (fn SinkFunc) Emit(ctx context.Context, f *Frame) error {
	return fn(ctx, f)
}

// Status 流的结束方式
type Status int

const (
	StatusDone      Status = iota // 正常结束，已发送结束帧
	StatusFailed                  // 生成出错，已发送错误帧
	StatusCancelled               // ctx 取消或写出失败，未发送结束帧
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Result 一次流式输出的结果
type Result struct {
	ID        string
	Status    Status
	Text      string // 已发送的全部增量文本
	Fragments int
	Frames    int
	Err       error // 生成错误（StatusFailed）或取消原因（StatusCancelled）
}

// Adapter 流式协议适配器
type Adapter struct {
	model       string
	pullTimeout time.Duration
	now         func() time.Time
	newID       func() string
}

// NewAdapter 创建适配器；pullTimeout<=0 表示不限制单次拉取时间
func NewAdapter(model string, pullTimeout time.Duration) *Adapter {
	return &Adapter{
		model:       model,
		pullTimeout: pullTimeout,
		now:         time.Now,
		newID:       id.NewStreamID,
	}
}

// Model 帧中的 model 字段
func (a *Adapter) Model() string {
	return a.model
}

// run 单次流的状态
type run struct {
	a            *Adapter
	id           string
	created      int64
	promptTokens int
	completion   int
	frames       int
}

// Run 从 src 拉取片段并逐帧写入 sink，返回时 src 已关闭
// 只有 sink 写出失败或 ctx 取消时返回非 nil error。
func (a *Adapter) Run(ctx context.Context, prompt string, src Source, sink Sink) (*Result, error) {
	defer src.Close()

	r := &run{
		a:            a,
		id:           a.newID(),
		created:      a.now().Unix(),
		promptTokens: utf8.RuneCountInString(prompt),
	}
	res := &Result{ID: r.id}
	var text []byte

	finish := func(status Status, err error) (*Result, error) {
		res.Status = status
		res.Text = string(text)
		res.Frames = r.frames
		res.Err = err
		if status == StatusCancelled {
			return res, err
		}
		return res, nil
	}

	if err := r.emit(ctx, sink, r.startFrame()); err != nil {
		return finish(StatusCancelled, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return finish(StatusCancelled, err)
		}
		frag, err := a.pull(ctx, src)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return finish(StatusCancelled, ctxErr)
			}
			if emitErr := r.emit(ctx, sink, r.errorFrame(err)); emitErr != nil {
				return finish(StatusCancelled, emitErr)
			}
			return finish(StatusFailed, err)
		}

		r.completion += utf8.RuneCountInString(frag)
		if err := r.emit(ctx, sink, r.deltaFrame(frag)); err != nil {
			return finish(StatusCancelled, err)
		}
		text = append(text, frag...)
		res.Fragments++
	}

	if err := r.emit(ctx, sink, r.doneFrame()); err != nil {
		return finish(StatusCancelled, err)
	}
	return finish(StatusDone, nil)
}

// Stream Run 的 channel 形式：帧通过无缓冲 channel 逐个送出，结束后关闭 channel
func (a *Adapter) Stream(ctx context.Context, prompt string, src Source) <-chan *Frame {
	ch := make(chan *Frame)
	go func() {
		defer close(ch)
		_, _ = a.Run(ctx, prompt, src, SinkFunc(func(ctx context.Context, f *Frame) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ch <- f:
				return nil
			}
		}))
	}()
	return ch
}

type pulled struct {
	frag string
	err  error
}

// pull 拉取一个片段，受 ctx 与 pullTimeout 约束
func (a *Adapter) pull(ctx context.Context, src Source) (string, error) {
	done := make(chan pulled, 1)
	go func() {
		frag, err := src.Recv()
		done <- pulled{frag: frag, err: err}
	}()

	var timeout <-chan time.Time
	if a.pullTimeout > 0 {
		timer := time.NewTimer(a.pullTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case p := <-done:
		return p.frag, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timeout:
		return "", fmt.Errorf("%w after %s", ErrPullTimeout, a.pullTimeout)
	}
}

func (r *run) emit(ctx context.Context, sink Sink, f *Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := sink.Emit(ctx, f); err != nil {
		return err
	}
	r.frames++
	return nil
}

func (r *run) header() Frame {
	return Frame{ID: r.id, Object: ObjectChunk, Created: r.created, Model: r.a.model}
}

func (r *run) usage() *Usage {
	return &Usage{
		PromptTokens:     r.promptTokens,
		CompletionTokens: r.completion,
		TotalTokens:      r.promptTokens + r.completion,
	}
}

func (r *run) startFrame() *Frame {
	f := r.header()
	f.Choices = []Choice{{Index: 0, Delta: Delta{Content: nil, Role: RoleAssistant}}}
	f.Usage = r.usage()
	return &f
}

func (r *run) deltaFrame(frag string) *Frame {
	f := r.header()
	f.Choices = []Choice{{Index: 0, Delta: Delta{Content: &frag, Role: RoleAssistant}}}
	f.Usage = r.usage()
	return &f
}

func (r *run) doneFrame() *Frame {
	empty := ""
	stop := FinishReasonStop
	f := r.header()
	f.Choices = []Choice{{Index: 0, Delta: Delta{Content: &empty, Role: RoleAssistant}, FinishReason: &stop}}
	f.Usage = r.usage()
	return &f
}

func (r *run) errorFrame(err error) *Frame {
	f := r.header()
	f.Error = &FrameError{Message: err.Error(), Type: ErrTypeUpstream, Code: ErrCodeGeneration}
	if errors.Is(err, ErrPullTimeout) {
		f.Error.Type = ErrTypeTimeout
		f.Error.Code = ErrCodeTimeout
	}
	return &f
}
