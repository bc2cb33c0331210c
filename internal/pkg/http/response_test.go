package http

import (
	nethttp "net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatusOf(t *testing.T) {
	Convey("错误码映射为 HTTP 状态码", t, func() {
		So(StatusOf(CodeValidation), ShouldEqual, nethttp.StatusBadRequest)
		So(StatusOf("NOVEL_NOT_FOUND"), ShouldEqual, nethttp.StatusNotFound)
		So(StatusOf("SESSION_NOT_FOUND"), ShouldEqual, nethttp.StatusNotFound)
		So(StatusOf("CHAPTER_POSITION_CONFLICT"), ShouldEqual, nethttp.StatusConflict)
		So(StatusOf("TITLE_GENERATION_FAILED"), ShouldEqual, nethttp.StatusBadGateway)
		So(StatusOf("SAVE_CHAPTER_FAILED"), ShouldEqual, nethttp.StatusInternalServerError)
		So(StatusOf(CodeRateLimited), ShouldEqual, nethttp.StatusTooManyRequests)
	})

	Convey("部分成功仍返回 200", t, func() {
		o := Partial("saved", CodeRollupStale, nil)
		So(o.Success, ShouldBeTrue)
		So(o.StatusCode(), ShouldEqual, nethttp.StatusOK)

		f := Fail("NOVEL_NOT_FOUND", "小说项目不存在")
		So(f.StatusCode(), ShouldEqual, nethttp.StatusNotFound)
		So(f.Timestamp.IsZero(), ShouldBeFalse)
	})
}
