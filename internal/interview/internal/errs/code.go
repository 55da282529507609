package errs

var (
	SystemError             = ErrorCode{Code: 517001, Msg: "系统错误"}
	InterviewNotFound       = ErrorCode{Code: 517002, Msg: "面试记录不存在"}
	InsufficientPermission  = ErrorCode{Code: 517003, Msg: "无权执行该操作"}
	InvalidStatusTransition = ErrorCode{Code: 517004, Msg: "当前状态不允许该操作"}
	DuplicateInterview      = ErrorCode{Code: 517005, Msg: "已存在进行中的面试请求"}
	InvalidInput            = ErrorCode{Code: 517006, Msg: "参数非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
