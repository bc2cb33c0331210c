package chatstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// listSource 依次返回片段，最后返回 tail（默认 io.EOF）
type listSource struct {
	mu     sync.Mutex
	frags  []string
	tail   error
	pos    int
	pulls  int
	closed bool
}

func (s *listSource) Recv() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pulls++
	if s.pos < len(s.frags) {
		f := s.frags[s.pos]
		s.pos++
		return f, nil
	}
	if s.tail != nil {
		return "", s.tail
	}
	return "", io.EOF
}

func (s *listSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *listSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// blockingSource 每次 Recv 都阻塞，直到 Close
type blockingSource struct {
	once sync.Once
	stop chan struct{}
}

func newBlockingSource() *blockingSource {
	return &blockingSource{stop: make(chan struct{})}
}

func (s *blockingSource) Recv() (string, error) {
	<-s.stop
	return "", io.EOF
}

func (s *blockingSource) Close() {
	s.once.Do(func() { close(s.stop) })
}

type recorder struct {
	frames []*Frame
}

func (r *recorder) Emit(ctx context.Context, f *Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func newTestAdapter(pullTimeout time.Duration) *Adapter {
	a := NewAdapter("co-novel", pullTimeout)
	a.newID = func() string { return "chatcmpl-test" }
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a
}

func TestAdapter_Run(t *testing.T) {
	Convey("适配器把片段序列转换为帧序列", t, func() {
		ctx := context.Background()
		a := newTestAdapter(0)
		rec := &recorder{}

		Convey("三个片段产生恰好五帧", func() {
			src := &listSource{frags: []string{"A", "B", "C"}}
			res, err := a.Run(ctx, "提示", src, rec)
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, StatusDone)
			So(res.Text, ShouldEqual, "ABC")
			So(res.Frames, ShouldEqual, 5)
			So(len(rec.frames), ShouldEqual, 5)

			So(rec.frames[0].IsStart(), ShouldBeTrue)
			So(rec.frames[0].Choices[0].Delta.Content, ShouldBeNil)
			So(rec.frames[0].Choices[0].Delta.Role, ShouldEqual, RoleAssistant)
			So(rec.frames[1].Content(), ShouldEqual, "A")
			So(rec.frames[2].Content(), ShouldEqual, "B")
			So(rec.frames[3].Content(), ShouldEqual, "C")
			So(rec.frames[4].IsDone(), ShouldBeTrue)
			So(rec.frames[4].Content(), ShouldEqual, "")
			So(*rec.frames[4].Choices[0].FinishReason, ShouldEqual, FinishReasonStop)

			for _, f := range rec.frames {
				So(f.ID, ShouldEqual, "chatcmpl-test")
				So(f.Object, ShouldEqual, ObjectChunk)
				So(f.Model, ShouldEqual, "co-novel")
				So(f.Created, ShouldEqual, int64(1700000000))
			}
			So(src.isClosed(), ShouldBeTrue)
		})

		Convey("usage 按已发送文本累计字符数", func() {
			src := &listSource{frags: []string{"天地", "玄黄"}}
			_, err := a.Run(ctx, "提示词", src, rec)
			So(err, ShouldBeNil)

			So(rec.frames[0].Usage.CompletionTokens, ShouldEqual, 0)
			So(rec.frames[1].Usage.CompletionTokens, ShouldEqual, 2)
			So(rec.frames[2].Usage.CompletionTokens, ShouldEqual, 4)
			So(rec.frames[3].Usage.CompletionTokens, ShouldEqual, 4)
			So(rec.frames[3].Usage.PromptTokens, ShouldEqual, 3)
			So(rec.frames[3].Usage.TotalTokens, ShouldEqual, 7)
		})

		Convey("没有片段时只有起始帧与结束帧", func() {
			res, err := a.Run(ctx, "p", &listSource{}, rec)
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, StatusDone)
			So(len(rec.frames), ShouldEqual, 2)
			So(rec.frames[0].IsStart(), ShouldBeTrue)
			So(rec.frames[1].IsDone(), ShouldBeTrue)
		})

		Convey("生成中途出错时发送错误帧且不发送结束帧", func() {
			src := &listSource{frags: []string{"A"}, tail: errors.New("upstream exploded")}
			res, err := a.Run(ctx, "p", src, rec)
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, StatusFailed)
			So(res.Err, ShouldNotBeNil)
			So(len(rec.frames), ShouldEqual, 3)

			last := rec.frames[2]
			So(last.IsError(), ShouldBeTrue)
			So(last.Choices, ShouldBeEmpty)
			So(last.Usage, ShouldBeNil)
			So(last.Error.Message, ShouldContainSubstring, "upstream exploded")
			So(last.Error.Code, ShouldEqual, ErrCodeGeneration)
			for _, f := range rec.frames {
				So(f.IsDone(), ShouldBeFalse)
			}
			So(src.isClosed(), ShouldBeTrue)
		})

		Convey("拉取超时产生 timeout 错误帧", func() {
			a := newTestAdapter(20 * time.Millisecond)
			src := newBlockingSource()
			res, err := a.Run(ctx, "p", src, rec)
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, StatusFailed)
			So(errors.Is(res.Err, ErrPullTimeout), ShouldBeTrue)

			last := rec.frames[len(rec.frames)-1]
			So(last.Error.Code, ShouldEqual, ErrCodeTimeout)
			So(last.Error.Type, ShouldEqual, ErrTypeTimeout)
		})

		Convey("取消后不再发送任何帧", func() {
			cctx, cancel := context.WithCancel(ctx)
			src := newBlockingSource()
			sink := SinkFunc(func(ctx context.Context, f *Frame) error {
				rec.frames = append(rec.frames, f)
				cancel()
				return nil
			})

			res, err := a.Run(cctx, "p", src, sink)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(res.Status, ShouldEqual, StatusCancelled)
			So(len(rec.frames), ShouldEqual, 1)
		})

		Convey("写出失败时停止拉取", func() {
			src := &listSource{frags: []string{"A", "B", "C"}}
			broken := errors.New("broken pipe")
			n := 0
			sink := SinkFunc(func(ctx context.Context, f *Frame) error {
				n++
				if n == 2 {
					return broken
				}
				return nil
			})

			res, err := a.Run(ctx, "p", src, sink)
			So(err, ShouldEqual, broken)
			So(res.Status, ShouldEqual, StatusCancelled)
			So(src.pulls, ShouldEqual, 1)
			So(src.isClosed(), ShouldBeTrue)
		})
	})
}

func TestAdapter_Stream(t *testing.T) {
	Convey("channel 形式保持相同的帧顺序", t, func() {
		a := newTestAdapter(0)
		var contents []string
		var frames int
		for f := range a.Stream(context.Background(), "p", &listSource{frags: []string{"A", "B", "C"}}) {
			frames++
			contents = append(contents, f.Content())
		}
		So(frames, ShouldEqual, 5)
		So(contents, ShouldResemble, []string{"", "A", "B", "C", ""})
	})
}

func TestFrame_Marshal(t *testing.T) {
	Convey("帧编码符合 chat.completion.chunk 格式", t, func() {
		a := newTestAdapter(0)
		rec := &recorder{}
		_, err := a.Run(context.Background(), "p", &listSource{frags: []string{"<你好>"}}, rec)
		So(err, ShouldBeNil)

		start, err := rec.frames[0].Marshal()
		So(err, ShouldBeNil)
		So(string(start), ShouldContainSubstring, `"delta":{"content":null,"role":"assistant"}`)
		So(string(start), ShouldContainSubstring, `"finish_reason":null`)

		delta, _ := rec.frames[1].Marshal()
		So(string(delta), ShouldContainSubstring, `"content":"<你好>"`)

		var decoded map[string]any
		So(json.Unmarshal(delta, &decoded), ShouldBeNil)
		So(decoded["object"], ShouldEqual, ObjectChunk)
		So(decoded["usage"], ShouldNotBeNil)

		done, _ := rec.frames[2].Marshal()
		So(string(done), ShouldContainSubstring, `"finish_reason":"stop"`)

		errFrame := (&run{a: a, id: "x"}).errorFrame(errors.New("boom"))
		raw, _ := errFrame.Marshal()
		So(string(raw), ShouldNotContainSubstring, "choices")
		So(string(raw), ShouldContainSubstring, `"error":{"message":"boom"`)
	})
}
