package novel

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"conovel/internal/pkg/chatstream"
	"conovel/internal/pkg/ctxutil"
	httputil "conovel/internal/pkg/http"
	"conovel/internal/pkg/metrics"
	"conovel/internal/service/novel"
)

// doneSentinel 传输层结束标记，不是帧
const doneSentinel = "[DONE]"

// streamGeneration 把生成流按 SSE 逐帧写出
// 每帧写为 `data: <json>\n\n` 并立即 flush，下一片段在上一帧写出后才拉取；
// 正常结束后追加 `data: [DONE]\n\n`。
func (h *Handler) streamGeneration(c *gin.Context, gs *novel.GenerationStream, out *httputil.Outcome) {
	if out != nil {
		respond(c, out)
		return
	}

	// 设置 SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(200)

	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	ctx := c.Request.Context()
	start := time.Now()
	sink := chatstream.SinkFunc(func(ctx context.Context, f *chatstream.Frame) error {
		data, err := f.Marshal()
		if err != nil {
			return err
		}
		return writeEvent(c, string(data))
	})

	res, err := h.adapter.Run(ctx, gs.Prompt, gs.Source, sink)
	requestID, _ := ctxutil.GetRequestID(ctx)
	logger := log.With().
		Str("request_id", requestID).
		Str("kind", gs.Kind).
		Str("stream_id", res.ID).
		Str("status", res.Status.String()).
		Int("frames", res.Frames).
		Bool("cached", gs.Cached).
		Dur("latency", time.Since(start)).
		Logger()

	metrics.StreamsTotal.WithLabelValues(gs.Kind, res.Status.String()).Inc()
	metrics.StreamFrames.WithLabelValues(gs.Kind).Observe(float64(res.Frames))

	switch res.Status {
	case chatstream.StatusDone:
		if err := writeEvent(c, doneSentinel); err != nil {
			logger.Warn().Err(err).Msg("failed to write stream terminator")
		}
		if !gs.Cached {
			gs.Complete(context.WithoutCancel(ctx), res.Text)
		}
		logger.Info().Int("fragments", res.Fragments).Msg("generation stream finished")
	case chatstream.StatusFailed:
		logger.Error().Err(res.Err).Msg("generation stream failed")
	default:
		logger.Warn().Err(err).Msg("generation stream cancelled")
	}
}

// writeEvent 写出一条 SSE data 行并 flush
func writeEvent(c *gin.Context, data string) error {
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}
